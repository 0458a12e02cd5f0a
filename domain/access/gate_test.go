package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_PublicEvent(t *testing.T) {
	policy := VisibilityPolicy{Visibility: VisibilityPublic}

	t.Run("grants anonymous viewers", func(t *testing.T) {
		decision := Evaluate(policy, nil)
		assert.True(t, decision.Granted)
		assert.Empty(t, decision.Reason)
	})

	t.Run("grants authenticated viewers", func(t *testing.T) {
		decision := Evaluate(policy, &Identity{Email: "someone@example.com", IsAuthenticated: true})
		assert.True(t, decision.Granted)
	})
}

func TestEvaluate_UnsetVisibilityTreatedAsPublic(t *testing.T) {
	// Records predating the visibility field carry an empty value
	policy := VisibilityPolicy{Visibility: VisibilityUnset}

	decision := Evaluate(policy, nil)

	assert.True(t, decision.Granted)
}

func TestEvaluate_PrivateEvent(t *testing.T) {
	policy := VisibilityPolicy{
		Visibility:    VisibilityPrivate,
		AllowedEmails: []string{"Guest@Example.com", "other@example.com"},
	}

	t.Run("denies anonymous viewers", func(t *testing.T) {
		decision := Evaluate(policy, nil)
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonPrivateEvent, decision.Reason)
	})

	t.Run("denies unauthenticated identities", func(t *testing.T) {
		decision := Evaluate(policy, &Identity{Email: "guest@example.com", IsAuthenticated: false})
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonPrivateEvent, decision.Reason)
	})

	t.Run("grants allow-listed viewers case-insensitively", func(t *testing.T) {
		decision := Evaluate(policy, &Identity{Email: "GUEST@example.COM", IsAuthenticated: true})
		assert.True(t, decision.Granted)
	})

	t.Run("denies viewers off the allow-list", func(t *testing.T) {
		decision := Evaluate(policy, &Identity{Email: "stranger@example.com", IsAuthenticated: true})
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonPrivateEvent, decision.Reason)
	})

	t.Run("denies private event with empty allow-list", func(t *testing.T) {
		bare := VisibilityPolicy{Visibility: VisibilityPrivate}
		decision := Evaluate(bare, &Identity{Email: "guest@example.com", IsAuthenticated: true})
		assert.False(t, decision.Granted)
	})
}

func TestVerifyGuest(t *testing.T) {
	policy := VisibilityPolicy{
		Visibility:    VisibilityPrivate,
		AllowedEmails: []string{"guest@example.com"},
	}

	t.Run("grants listed email", func(t *testing.T) {
		decision := VerifyGuest(policy, "guest@example.com")
		assert.True(t, decision.Granted)
		assert.False(t, decision.IsValidationFailure())
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		decision := VerifyGuest(policy, "  GUEST@Example.Com  ")
		assert.True(t, decision.Granted)
	})

	t.Run("denies unlisted email", func(t *testing.T) {
		decision := VerifyGuest(policy, "stranger@example.com")
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonNotOnGuestList, decision.Reason)
		assert.False(t, decision.IsValidationFailure())
	})

	t.Run("empty email is a validation failure, not a denial", func(t *testing.T) {
		decision := VerifyGuest(policy, "")
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonEmptyEmail, decision.Reason)
		assert.True(t, decision.IsValidationFailure())
	})

	t.Run("whitespace-only email is a validation failure", func(t *testing.T) {
		decision := VerifyGuest(policy, "   ")
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonEmptyEmail, decision.Reason)
		assert.True(t, decision.IsValidationFailure())
	})
}

func TestVerifyGuest_NonPrivateEvent(t *testing.T) {
	policy := VisibilityPolicy{
		Visibility:    VisibilityPublic,
		AllowedEmails: []string{"guest@example.com"},
	}

	t.Run("grants without consulting the allow-list", func(t *testing.T) {
		decision := VerifyGuest(policy, "stranger@example.com")
		assert.True(t, decision.Granted)
	})

	t.Run("unset visibility behaves the same", func(t *testing.T) {
		decision := VerifyGuest(VisibilityPolicy{}, "anyone@example.com")
		assert.True(t, decision.Granted)
	})

	t.Run("blank input still fails validation", func(t *testing.T) {
		decision := VerifyGuest(policy, "  ")
		assert.False(t, decision.Granted)
		assert.Equal(t, ReasonEmptyEmail, decision.Reason)
		assert.True(t, decision.IsValidationFailure())
	})
}
