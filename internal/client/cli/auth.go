package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/focussync/internal/client/api"
	"github.com/dmitrijs2005/focussync/internal/client/store"
	"github.com/dmitrijs2005/focussync/internal/common"
)

// Register creates an account on the server. The local data stays where it
// is; the next sync attaches it to the new profile.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	displayName, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.client.Register(ctx, email, string(password), displayName)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Println("Server unavailable, try again once online")
		} else {
			log.Printf("Registration unsuccessful: %s", err.Error())
		}
		return err
	}

	a.email = res.User.Email
	if err := a.saveSession(ctx); err != nil {
		log.Printf("error saving session: %v", err)
	}

	log.Printf("Welcome, %s!", res.User.DisplayName)
	a.syncNow(ctx)
	return nil
}

// Login authenticates and immediately syncs so local offline work merges
// into the profile.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Println("Server unavailable, continuing offline")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.email = res.User.Email
	if err := a.saveSession(ctx); err != nil {
		log.Printf("error saving session: %v", err)
	}

	log.Printf("Login successful. Check-in streak: %d (longest %d)",
		res.User.CurrentStreak, res.User.LongestStreak)
	a.syncNow(ctx)
	return nil
}

// Logout drops the session. Local records stay: the client keeps working
// offline and anonymous syncs still echo.
func (a *App) Logout(ctx context.Context) error {
	a.client.SetTokens("", "")
	a.email = ""

	for _, key := range []string{store.MetaAccessToken, store.MetaRefreshToken, store.MetaEmail} {
		if err := a.store.DeleteMeta(ctx, key); err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	log.Println("Logged out")
	return nil
}
