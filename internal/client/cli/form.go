package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/dialogs"
	"github.com/iudanet/credadmin/internal/models"
	apitypes "github.com/iudanet/credadmin/pkg/api"
)

// clearValue в ответе на запрос поля очищает необязательное значение
const clearValue = "-"

func (a *App) runEditDialog(ctx context.Context, d *dialogs.EditDialog) error {
	if d.IsNew() {
		a.io.Println("=== Create a new Credential ===")
	} else {
		a.io.Printf("=== Edit Credential %d ===\n", d.Draft().IDValue())
	}
	a.io.Println("Press Enter to keep the current value, '-' to clear an optional field.")
	a.io.Println()

	if err := d.LoadUsers(ctx); err != nil {
		a.io.Printf("Warning: failed to load users: %s\n", api.Describe(err))
	}

	for {
		if err := a.fillDraft(d); err != nil {
			d.Cancel()
			return err
		}

		saved, err := d.Save(ctx)
		if err == nil {
			a.io.Println()
			a.io.Printf("✓ Credential %d saved\n", saved.IDValue())
			return nil
		}

		a.io.Printf("Error: %s\n", api.Describe(err))
		retry, cerr := a.io.Confirm("Edit and retry?")
		if cerr != nil || !retry {
			d.Cancel()
			return fmt.Errorf("credential was not saved: %w", err)
		}
	}
}

func (a *App) runDeleteDialog(ctx context.Context, d *dialogs.DeleteDialog) error {
	rec := d.Record()
	a.io.Println("=== Confirm delete operation ===")
	a.io.Printf("Are you sure you want to delete Credential %d (%s)?\n", rec.IDValue(), rec.Login)

	for {
		ok, err := a.io.Confirm("Delete")
		if err != nil || !ok {
			d.Cancel()
			a.io.Println("Cancelled.")
			return nil
		}

		if err := d.Confirm(ctx); err != nil {
			// диалог остается открытым, пользователь может повторить или отменить
			a.io.Printf("Error: %s\n", api.Describe(err))
			continue
		}

		a.io.Printf("✓ Credential %d deleted\n", rec.IDValue())
		return nil
	}
}

// fillDraft запрашивает каждое поле черновика
func (a *App) fillDraft(d *dialogs.EditDialog) error {
	draft := d.Draft()

	login, err := a.promptString("Login", draft.Login, false)
	if err != nil {
		return err
	}
	passwordHash, err := a.promptString("Password hash", draft.PasswordHash, true)
	if err != nil {
		return err
	}
	lastLogin, err := a.promptTime("Last login date", draft.LastLoginDate)
	if err != nil {
		return err
	}
	activationKey, err := a.promptString("Activation key", draft.ActivationKey, true)
	if err != nil {
		return err
	}
	resetKey, err := a.promptString("Reset key", draft.ResetKey, true)
	if err != nil {
		return err
	}
	resetDate, err := a.promptTime("Reset date", draft.ResetDate)
	if err != nil {
		return err
	}
	activated, err := a.promptBool("Activated", draft.Activated)
	if err != nil {
		return err
	}
	primary, err := a.promptBool("Primary", draft.Primary)
	if err != nil {
		return err
	}

	if err := d.Modify(func(c *models.Credential) {
		c.Login = login
		c.PasswordHash = passwordHash
		c.LastLoginDate = lastLogin
		c.ActivationKey = activationKey
		c.ResetKey = resetKey
		c.ResetDate = resetDate
		c.Activated = activated
		c.Primary = primary
	}); err != nil {
		return err
	}

	return a.promptOwner(d)
}

func (a *App) promptString(label, current string, optional bool) (string, error) {
	input, err := a.io.ReadInput(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	switch {
	case input == "":
		return current, nil
	case input == clearValue && optional:
		return "", nil
	default:
		return input, nil
	}
}

func (a *App) promptBool(label string, current bool) (bool, error) {
	def := "n"
	if current {
		def = "y"
	}
	for {
		input, err := a.io.ReadInput(fmt.Sprintf("%s (y/n) [%s]: ", label, def))
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		switch strings.ToLower(input) {
		case "":
			return current, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		a.io.Println("Please answer y or n.")
	}
}

func (a *App) promptTime(label string, current *time.Time) (*time.Time, error) {
	shown := ""
	if current != nil {
		shown = current.Format(time.RFC3339)
	}
	for {
		input, err := a.io.ReadInput(fmt.Sprintf("%s (RFC3339) [%s]: ", label, shown))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		switch input {
		case "":
			return current, nil
		case clearValue:
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, input)
		if err == nil {
			return &t, nil
		}
		a.io.Println("Invalid date, expected e.g. 2024-03-15T10:30:00Z")
	}
}

func (a *App) promptOwner(d *dialogs.EditDialog) error {
	users, usersErr := d.Users()
	if usersErr == nil && len(users) > 0 {
		logins := make([]string, 0, len(users))
		for _, u := range users {
			logins = append(logins, u.Login)
		}
		a.io.Printf("Available owners: %s\n", strings.Join(logins, ", "))
	}

	current := d.Draft().UserLogin
	for {
		input, err := a.io.ReadInput(fmt.Sprintf("Owner login [%s]: ", current))
		if err != nil {
			return fmt.Errorf("failed to read owner: %w", err)
		}
		switch input {
		case "":
			return nil
		case clearValue:
			return d.ClearUser()
		}
		if u, ok := findUser(users, input); ok {
			return d.SelectUser(u)
		}
		a.io.Printf("Unknown user %q\n", input)
	}
}

func findUser(users []apitypes.UserDTO, login string) (apitypes.UserDTO, bool) {
	for _, u := range users {
		if u.Login == login {
			return u, true
		}
	}
	return apitypes.UserDTO{}, false
}
