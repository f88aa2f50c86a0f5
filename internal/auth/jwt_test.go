package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-key-for-token-codec-0001"

func TestTokenCodec_IssueAndDecode(t *testing.T) {
	codec := NewTokenCodec(testSecret, 30*time.Minute)

	token, err := codec.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestTokenCodec_Decode_Garbage(t *testing.T) {
	codec := NewTokenCodec(testSecret, 30*time.Minute)

	_, err := codec.Decode("not-a-jwt-at-all")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodec_Decode_WrongSecret(t *testing.T) {
	codec := NewTokenCodec(testSecret, 30*time.Minute)
	other := NewTokenCodec("a-completely-different-signing-secret", 30*time.Minute)

	token, err := other.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodec_Decode_Expired(t *testing.T) {
	codec := NewTokenCodec(testSecret, 30*time.Minute)

	issued := time.Now().UTC()
	codec.now = func() time.Time { return issued }

	token, err := codec.Issue("alice@example.com")
	require.NoError(t, err)

	// Still valid just before the lifetime elapses.
	codec.now = func() time.Time { return issued.Add(29 * time.Minute) }
	subject, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)

	// Rejected once the lifetime has elapsed.
	codec.now = func() time.Time { return issued.Add(31 * time.Minute) }
	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_Decode_MissingSubject(t *testing.T) {
	codec := NewTokenCodec(testSecret, 30*time.Minute)

	// A well-signed, unexpired token that simply has no subject claim.
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
			Issuer:    "todo-api",
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	assert.ErrorIs(t, err, ErrTokenMissingSubject)
}

func TestTokenCodec_Issue_FreshExpiryEachCall(t *testing.T) {
	codec := NewTokenCodec(testSecret, 30*time.Minute)

	issued := time.Now().UTC()
	codec.now = func() time.Time { return issued }
	first, err := codec.Issue("alice@example.com")
	require.NoError(t, err)

	// A token issued 20 minutes later outlives the first one.
	codec.now = func() time.Time { return issued.Add(20 * time.Minute) }
	second, err := codec.Issue("alice@example.com")
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(40 * time.Minute) }
	_, err = codec.Decode(first)
	assert.ErrorIs(t, err, ErrTokenExpired)

	subject, err := codec.Decode(second)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}
