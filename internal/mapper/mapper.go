package mapper

import "github.com/pragyanai/demotrack/internal/domain"

// ToUserDTO converts User to UserDTO. The password hash is dropped here
// and nowhere later.
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		FullName:      user.FullName,
		College:       user.College,
		Branch:        user.Branch,
		RollNo:        user.RollNo,
		YearOfPassing: user.YearOfPassing,
		PhoneLogin:    user.PhoneLogin,
		PhoneWhatsapp: user.PhoneWhatsapp,
		UserName:      user.UserName,
		Status:        string(user.Status),
		Role:          string(user.Role),
		RegisteredAt:  user.RegisteredAt,
	}
}

// ToUserDTOs converts a slice of users.
func ToUserDTOs(users []domain.User) []domain.UserDTO {
	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = ToUserDTO(&users[i])
	}
	return dtos
}

// ToEventDTO converts Event to EventDTO.
func ToEventDTO(event *domain.Event) domain.EventDTO {
	return domain.EventDTO{
		Name:         event.Name,
		DemoDate:     event.DemoDate,
		Domain:       event.Domain,
		Description:  event.Description,
		Approved:     event.IsApproved(),
		Conducted:    event.IsConducted(),
		WhatsappLink: event.WhatsappLink,
		SheetLink:    event.SheetLink,
	}
}

// ToEventDTOs converts a slice of events.
func ToEventDTOs(events []domain.Event) []domain.EventDTO {
	dtos := make([]domain.EventDTO, len(events))
	for i := range events {
		dtos[i] = ToEventDTO(&events[i])
	}
	return dtos
}

// ToSubmissionDTO converts Submission to SubmissionDTO.
func ToSubmissionDTO(sub *domain.Submission) domain.SubmissionDTO {
	return domain.SubmissionDTO{
		StudentFullName:  sub.StudentFullName,
		College:          sub.College,
		Branch:           sub.Branch,
		ProjectTitle:     sub.ProjectTitle,
		Description:      sub.Description,
		ReportLink:       sub.ReportLink,
		PresentationLink: sub.PresentationLink,
		GitHubLink:       sub.GitHubLink,
		YouTubeLink:      sub.YouTubeLink,
		LinkedinPostLink: sub.LinkedinPostLink,
		EventName:        sub.EventName,
	}
}

// ToSubmissionDTOs converts a slice of submissions.
func ToSubmissionDTOs(subs []domain.Submission) []domain.SubmissionDTO {
	dtos := make([]domain.SubmissionDTO, len(subs))
	for i := range subs {
		dtos[i] = ToSubmissionDTO(&subs[i])
	}
	return dtos
}

// ToEvaluationDTO converts Evaluation to EvaluationDTO.
func ToEvaluationDTO(eval *domain.Evaluation) domain.EvaluationDTO {
	return domain.EvaluationDTO{
		Candidate:    eval.Candidate,
		ProjectTitle: eval.ProjectTitle,
		AverageScore: eval.AverageScore,
		Evaluator:    eval.Evaluator,
	}
}

// ToEvaluationDTOs converts a slice of evaluations.
func ToEvaluationDTOs(evals []domain.Evaluation) []domain.EvaluationDTO {
	dtos := make([]domain.EvaluationDTO, len(evals))
	for i := range evals {
		dtos[i] = ToEvaluationDTO(&evals[i])
	}
	return dtos
}
