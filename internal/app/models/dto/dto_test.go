package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyplan/internal/pkg/notify"
)

func TestHandleValidationErrorListsFields(t *testing.T) {
	err := binding.Validator.ValidateStruct(&LoginRequest{Email: "not-an-email"})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)

	fields, ok := detail.Details.([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "email must be a valid email address", fields[0].Message)
	assert.Equal(t, "password is required", fields[1].Message)
}

func TestCourseRequestToInputTrims(t *testing.T) {
	in := CourseRequest{SchoolCourseID: " TDT4100 ", Name: " OOP ", Credits: 7.5, SeasonID: 1, CategoryID: 2}.ToInput()
	assert.Equal(t, "TDT4100", in.SchoolCourseID)
	assert.Equal(t, "OOP", in.Name)
	assert.Nil(t, in.MajorID)
}

func TestCourseRequestToInputDropsZeroIDs(t *testing.T) {
	zero, five := int64(0), int64(5)
	in := CourseRequest{SubcategoryID: &zero, MajorID: &five}.ToInput()
	assert.Nil(t, in.SubcategoryID)
	assert.Equal(t, &five, in.MajorID)
	assert.Nil(t, in.MinorID)
}

func TestAPIResponseWithNotification(t *testing.T) {
	resp := NewAPIResponse([]int{1}).WithNotification(notify.Success("Successfully added course"))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Notification)
	assert.Equal(t, notify.StatusSuccess, resp.Notification.Status)
}
