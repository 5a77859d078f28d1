package tracker

import (
	"github.com/julianstephens/dailycheck/internal/constants"
	"github.com/julianstephens/dailycheck/internal/models"
)

// Login sets the current user. Credentials are not checked; the identity is local.
func (t *Tracker) Login(email, name string) (models.User, error) {
	if !t.loaded {
		return models.User{}, ErrNotLoaded
	}

	user := models.User{
		ID:    constants.LocalUserID,
		Name:  name,
		Email: email,
	}
	t.user = &user
	t.log().Debug("Logged in", "email", email)

	return user, t.saveUser()
}

// Logout clears the current user.
func (t *Tracker) Logout() error {
	if !t.loaded {
		return ErrNotLoaded
	}

	t.user = nil
	t.log().Debug("Logged out")

	return t.saveUser()
}

// User returns a copy of the current user, or nil when nobody is logged in.
func (t *Tracker) User() *models.User {
	if t.user == nil {
		return nil
	}
	u := *t.user
	return &u
}

func (t *Tracker) IsAuthenticated() bool {
	return t.user != nil
}
