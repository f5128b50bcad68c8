package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/minglehq/mingle/internal/client/repository"
	"github.com/minglehq/mingle/internal/domain"
)

// postJSON marshals payload and posts it, mapping transport failures to the
// most nested error. The caller owns the response body.
func postJSON(endpoint string, payload any) (*http.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	resp, err := http.DefaultClient.Post(endpoint, "application/json", bytes.NewReader(b))
	if err != nil {
		slog.Error(err.Error())
		return nil, getMostNestedError(err)
	}
	return resp, nil
}

// getJSON runs a bearer-authed GET and unmarshals the body into "into",
// returning the response status code alongside any error.
func (c *Client) getJSON(endpoint string, into any) (int, error) {
	r, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error(err.Error())
		return 0, ErrApplication
	}
	r.Header.Set("Authorization", "Bearer "+c.AuthToken)
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		slog.Error(err.Error())
		return http.StatusServiceUnavailable, getMostNestedError(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if err = json.Unmarshal(b, into); err != nil {
		slog.Error(err.Error())
		return 0, ErrApplication
	}
	return resp.StatusCode, nil
}

// Register creates the account and, on a 422, writes the per-field errors
// back into u so the form can surface them.
func (*Client) Register(u *domain.UserRegister) error {
	resp, err := postJSON(registerUser, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusUnprocessableEntity:
		var fieldErrs struct {
			Errors *domain.UserRegister `json:"errors"`
		}
		fieldErrs.Errors = u
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			slog.Error(err.Error())
			return err
		}
		if err = json.Unmarshal(b, &fieldErrs); err != nil {
			slog.Error(err.Error())
			return err
		}
		return ErrServerValidation
	case http.StatusInternalServerError:
		return errors.New("the server is overwhelmed")
	}
	return nil
}

func (c *Client) Login(u domain.UserAuth) error {
	resp, err := postJSON(authenticate, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var fieldErrs struct {
			Errors *domain.UserAuth `json:"errors"`
		}
		if err = json.Unmarshal(b, &fieldErrs); err != nil {
			slog.Error(err.Error())
			return err
		}
		if fieldErrs.Errors.Email == ErrNonActiveUser.Error() {
			return ErrNonActiveUser
		}
		return ErrUnauthorized
	}
	var token struct {
		Token string `json:"token"`
	}
	if err = json.Unmarshal(b, &token); err != nil {
		slog.Error(err.Error())
		return err
	}
	c.AuthToken = token.Token
	if err = c.krm.setAuthTokenInKeyring(u.Email, c.AuthToken); err != nil {
		slog.Error(err.Error())
		return err
	}
	c.LoginState.WriteToChan(true) // signal an authenticated user
	return nil
}

func (c *Client) ActivateUser(otp string) error {
	payload := struct {
		OTP string `json:"otp"`
	}{OTP: otp}
	resp, err := postJSON(activateUser, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		slog.Error(resp.Status)
		return ErrExpiredOTP
	}
	return nil
}

func (c *Client) ResendOtp(email string) error {
	payload := struct {
		Email string `json:"email"`
	}{Email: email}
	resp, err := postJSON(generateOTP, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return errors.New(http.StatusText(resp.StatusCode))
	}
	return nil
}

func (c *Client) SearchUser(query string) ([]domain.User, error, int) {
	v := url.Values{}
	v.Set("param", query)
	var res struct {
		Users []domain.User `json:"users"`
	}
	code, err := c.getJSON(searchUser+"?"+v.Encode(), &res)
	if err != nil {
		return nil, err, code
	}
	return res.Users, nil, code
}

func (c *Client) GetUserByID(id string) (*domain.User, error, int) {
	var res struct {
		User domain.User `json:"user"`
	}
	code, err := c.getJSON(getByUniqueField+"/"+id, &res)
	if err != nil {
		return nil, err, code
	}
	return &res.User, nil, code
}

func (c *Client) GetCurrentActiveUser() (*domain.User, error, int) {
	var res struct {
		User domain.User `json:"user"`
	}
	code, err := c.getJSON(getCurrentActiveUser, &res)
	if err != nil {
		return nil, err, code
	}
	return &res.User, nil, code
}

// Logout drops the keyring token and routes the program back to login. The
// socket loop notices the cleared token and stops reconnecting.
func (c *Client) Logout() error {
	if err := c.krm.removeAuthTokenFromKeyring(); err != nil {
		slog.Error(err.Error())
		return err
	}
	c.AuthToken = ""
	c.LoginState.WriteToChan(false)
	return nil
}

// userDirectory resolves peer profiles for the reconciliation engine,
// preferring the local cache and falling back to the api.
type userDirectory struct {
	c *Client
}

func (d userDirectory) Lookup(userID string) (domain.User, error) {
	if u, err := d.c.repo.GetUserByID(userID); err == nil {
		return *u, nil
	}
	u, err, _ := d.c.GetUserByID(userID)
	if err != nil {
		return domain.User{}, err
	}
	_ = d.c.repo.SaveUser(u)
	return *u, nil
}

// manageUserSessions waits on LoginState transitions. On login it resolves
// the current user, persists it and starts a fresh reconciliation session. A
// login by a different user than the cached one recreates the db file so the
// session starts from an empty local cache.
func (c *Client) manageUserSessions(shtdwnCtx context.Context) {
	for {
		loggedIn := c.LoginState.WaitForStateChange()
		select {
		case <-shtdwnCtx.Done():
			return
		default:
		}
		if !loggedIn {
			continue
		}
		u, err, _ := c.GetCurrentActiveUser()
		if err != nil {
			// offline resume, fall back to the cached user
			if u, err = c.repo.GetCurrentUser(); err != nil {
				slog.Error("unable to resolve current user", "err", err.Error())
				continue
			}
			c.startSession(u)
			continue
		}
		cached, _ := c.repo.GetCurrentUser()
		if cached != nil && cached.ID != u.ID {
			// a missing file is fine here, opening a conn recreates it
			_ = repository.DeleteDBFile(c.FilesDir)
			db, err := repository.OpenDB(c.FilesDir)
			if err != nil {
				log.Fatal(err)
			}
			c.db = db
			if err = c.db.RunMigrations(); err != nil {
				log.Fatal(err)
			}
			c.repo = repository.NewLocalRepository(c.db)
		} else if err := c.repo.DeletePreviousUser(); err != nil {
			slog.Error("unable to delete previous user", "err", err.Error())
		}
		if err := c.repo.SaveCurrentUser(u); err != nil {
			slog.Error("unable to save current user to local cache", "err", err.Error())
		}
		c.startSession(u)
	}
}
