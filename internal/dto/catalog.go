package dto

// CreateTeacherRequest is the payload for registering a teacher.
type CreateTeacherRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// CreateSubjectRequest is the payload for registering a subject.
type CreateSubjectRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// CreateGroupRequest is the payload for registering a group.
type CreateGroupRequest struct {
	Name  string `json:"name" binding:"required"`
	Grade string `json:"grade" binding:"required"`
}

// CreateSubjectLoadRequest binds a subject to a teacher and group with a
// weekly contact-hour count, directly mirroring engine.Event's shape.
type CreateSubjectLoadRequest struct {
	GroupID     string `json:"group_id" binding:"required"`
	SubjectID   string `json:"subject_id" binding:"required"`
	TeacherID   string `json:"teacher_id" binding:"required"`
	WeeklyHours int    `json:"weekly_hours" binding:"required,min=1,max=15"`
}
