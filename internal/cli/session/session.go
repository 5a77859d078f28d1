package session

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dailycheck/internal/cli"
)

type LoginCmd struct {
	Email string `arg:"" help:"Email address for the local profile."`
	Name  string `arg:"" help:"Display name."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	user, err := ctx.Tracker.Login(email, name)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if !ctx.Tracker.IsAuthenticated() {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := ctx.Tracker.Logout(); err != nil {
		return err
	}
	fmt.Println("✓ Signed out. Habits and logs are kept.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user := ctx.Tracker.User()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}
