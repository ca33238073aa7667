package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DisplayName(t *testing.T) {
	t.Run("Should prefer the first name", func(t *testing.T) {
		u := User{UserID: 7, Username: "ivan", FirstName: "Иван"}
		assert.Equal(t, "Иван", u.DisplayName())
	})

	t.Run("Should fall back to the username", func(t *testing.T) {
		u := User{UserID: 7, Username: "ivan"}
		assert.Equal(t, "ivan", u.DisplayName())
	})

	t.Run("Should fall back to the ID", func(t *testing.T) {
		assert.Equal(t, "ID 123456789", User{UserID: 123456789}.DisplayName())
		assert.Equal(t, "ID -42", User{UserID: -42}.DisplayName())
	})
}
