package courselist

import (
	"context"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/pkg/notify"
)

// Notification messages of the course mutations.
const (
	MsgAddSuccess    = "Successfully added course"
	MsgAddFailure    = "Failed to add course"
	MsgUpdateSuccess = "Successfully edited course"
	MsgUpdateFailure = "Failed to edit course"
	MsgRemoveSuccess = "Successfully removed course"
	MsgRemoveFailure = "Failed to remove course"
)

// Outcome is the result of one course mutation: the list to display and
// exactly one notification. Err keeps the cause of a failure for logging;
// it is never shown to the user.
type Outcome struct {
	Courses      []*models.Course
	Course       *models.Course
	Notification notify.Notification
	Err          error
}

// Failed reports whether the mutation failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// AddCourse adds a course. On success the list is refetched; on failure
// previous is returned unchanged.
func (l *List) AddCourse(ctx context.Context, programmeID int64, previous []*models.Course, in models.CourseInput) Outcome {
	course, err := l.courses.Add(ctx, programmeID, in)
	if err != nil {
		return l.failed(programmeID, previous, MsgAddFailure, err)
	}
	out := l.succeeded(ctx, programmeID, previous, MsgAddSuccess)
	out.Course = course
	return out
}

// UpdateCourse edits a course with the same refetch contract as AddCourse.
func (l *List) UpdateCourse(ctx context.Context, programmeID, courseID int64, previous []*models.Course, in models.CourseInput) Outcome {
	course, err := l.courses.Update(ctx, programmeID, courseID, in)
	if err != nil {
		return l.failed(programmeID, previous, MsgUpdateFailure, err)
	}
	out := l.succeeded(ctx, programmeID, previous, MsgUpdateSuccess)
	out.Course = course
	return out
}

// RemoveCourse removes a course with the same refetch contract as AddCourse.
func (l *List) RemoveCourse(ctx context.Context, programmeID, courseID int64, previous []*models.Course) Outcome {
	if err := l.courses.Remove(ctx, programmeID, courseID); err != nil {
		return l.failed(programmeID, previous, MsgRemoveFailure, err)
	}
	return l.succeeded(ctx, programmeID, previous, MsgRemoveSuccess)
}

func (l *List) failed(programmeID int64, previous []*models.Course, msg string, err error) Outcome {
	l.logger.Warn().Err(err).Int64("programmeID", programmeID).Msg(msg)
	return Outcome{
		Courses:      previous,
		Notification: notify.Error(msg),
		Err:          err,
	}
}

// succeeded refetches the list after a committed mutation. A failed refetch
// keeps previous; the mutation itself still succeeded.
func (l *List) succeeded(ctx context.Context, programmeID int64, previous []*models.Course, msg string) Outcome {
	courses, err := l.courses.List(ctx, programmeID)
	if err != nil {
		l.logger.Error().Err(err).Int64("programmeID", programmeID).Msg("Refetch after course mutation failed")
		courses = previous
	}
	return Outcome{
		Courses:      courses,
		Notification: notify.Success(msg),
	}
}
