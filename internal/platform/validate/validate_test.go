package validate

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/apierr"
)

func requireFields(t *testing.T, err error) map[string]string {
	t.Helper()
	e, ok := apierr.As(err)
	require.True(t, ok, "expected *apierr.Error, got %v", err)
	require.Equal(t, http.StatusUnprocessableEntity, e.Status)
	return e.Fields
}

func TestStructUsesJSONKeysAndMessages(t *testing.T) {
	fields := requireFields(t, Struct(&domain.Class{Name: "   "}))
	require.Equal(t, map[string]string{
		"name":     "Name is required",
		"level_id": "Education level is required",
	}, fields)

	fields = requireFields(t, Struct(domain.Subject{Name: "Maths"}))
	require.Equal(t, "Class is required", fields["class_id"])

	require.NoError(t, Struct(domain.EducationLevel{Name: "Primary"}))
}

func TestStructUser(t *testing.T) {
	fields := requireFields(t, Struct(domain.User{Email: "not-an-email", Password: "short"}))
	require.Equal(t, "Username is required", fields["username"])
	require.Equal(t, "Email is not valid", fields["email"])
	require.Equal(t, "Password must be at least 8 characters", fields["password"])

	fields = requireFields(t, Struct(domain.User{Username: "amina", Password: "correct horse"}))
	require.Equal(t, map[string]string{"email": "Email is required"}, fields)

	require.NoError(t, Struct(domain.User{Username: "amina", Email: "amina@example.com", Password: "correct horse"}))
}

func TestStructProgressTarget(t *testing.T) {
	fields := requireFields(t, Struct(domain.UserProgress{}))
	require.Equal(t, "User is required", fields["user_id"])
	require.Equal(t, "Either chapter_id or topic_id is required", fields["chapter_id"])

	fields = requireFields(t, Struct(domain.UserProgress{UserID: "u1", ChapterID: "c1", TopicID: "t1"}))
	require.Equal(t, map[string]string{"topic_id": "Set only one of chapter_id or topic_id"}, fields)

	require.NoError(t, Struct(domain.UserProgress{UserID: "u1", TopicID: "t1"}))
}

func TestMobileTag(t *testing.T) {
	type req struct {
		Mobile string `json:"mobile_number" validate:"notblank,mobile"`
	}
	for _, ok := range []string{"0700000000", "+254700000000", "1234567"} {
		require.NoError(t, Struct(req{Mobile: ok}), ok)
	}
	for _, bad := range []string{"123456", "07abc00000", "+1234567890123456", "++0700000000"} {
		fields := requireFields(t, Struct(req{Mobile: bad}))
		require.Equal(t, "Mobile number must have 7 to 15 digits", fields["mobile_number"], bad)
	}
	fields := requireFields(t, Struct(req{}))
	require.Equal(t, "Mobile number is required", fields["mobile_number"])
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Education level", Label("level_id"))
	require.Equal(t, "Subject", Label("subject_id"))
	require.Equal(t, "Image link", Label("image_link"))
	require.Equal(t, "OTP", Label("otp"))
}

func TestBlank(t *testing.T) {
	require.True(t, Blank(""))
	require.True(t, Blank(" \t"))
	require.False(t, Blank("x"))
}
