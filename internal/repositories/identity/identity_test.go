package identity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindValid(t *testing.T) {
	assert.Equal(t, true, KindUser.Valid())
	assert.Equal(t, true, KindProfessor.Valid())
	assert.Equal(t, false, Kind("admin").Valid())
	assert.Equal(t, false, Kind("").Valid())
}

func TestPublic(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	prof := Identity{
		ID:           "id",
		Kind:         KindProfessor,
		Name:         "Dr. Lee",
		Email:        "lee@uni.edu",
		PasswordHash: "secret hash",
		Institution:  "MIT",
		CreatedAt:    created,
	}

	body, err := json.Marshal(prof.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret hash")
	assert.JSONEq(t, `{"id":"id","name":"Dr. Lee","email":"lee@uni.edu","role":"professor",
		"institution":"MIT","created_at":"2026-03-01T10:00:00Z"}`, string(body))

	// у обычного пользователя нет учреждения
	user := Identity{ID: "u", Kind: KindUser, Name: "L", Email: "l@x.com", PasswordHash: "h", CreatedAt: created}
	body, err = json.Marshal(user.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(body), "institution")
	assert.Equal(t, "user", user.Role())

	// хэш пароля не сериализуется даже для самой учетной записи
	body, err = json.Marshal(prof)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret hash")
}
