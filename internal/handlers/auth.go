package handlers

import (
	"errors"
	"net/http"
	"strings"

	"slideforge/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const sessionCookieName = "session_token"

type registerForm struct {
	Username        string `form:"username" binding:"required,min=2,max=32"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
}

func (h *Handler) registerPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{"title": "Register"})
}

func (h *Handler) register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "register.html", gin.H{
			"title": "Register",
			"error": formErrorMessage(err),
		})
		return
	}

	id, err := h.services.Register(form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			h.render(c, http.StatusOK, "register.html", gin.H{
				"title": "Register",
				"error": "That username or email is already taken.",
			})
			return
		}
		if h.log != nil {
			h.log.Errorw("register_failed", "username", form.Username, "err", err)
		}
		h.render(c, http.StatusInternalServerError, "register.html", gin.H{
			"title": "Register",
			"error": "Something went wrong. Please try again.",
		})
		return
	}

	// Matches the historical flow: the fresh account gets a session right
	// away, then lands on the login page with a confirmation.
	if token, err := h.services.IssueToken(id, true); err == nil {
		h.setSessionCookie(c, token, true)
	}
	setFlash(c, flashSuccess, "Your account has been created! You are now able to log in")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) loginPage(c *gin.Context) {
	if currentUserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (h *Handler) login(c *gin.Context) {
	if currentUserFrom(c) != nil {
		c.Redirect(http.StatusFound, "/home")
		return
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{
			"title": "Login",
			"error": formErrorMessage(err),
		})
		return
	}

	u, err := h.services.Authenticate(form.Email, form.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "email", form.Email)
		}
		// Same message for unknown email and wrong password.
		h.render(c, http.StatusOK, "login.html", gin.H{
			"title": "Login",
			"error": "Login unsuccessful. Please check email and password",
		})
		return
	}

	token, err := h.services.IssueToken(u.ID, form.Remember)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("issue_token_failed", "err", err)
		}
		h.render(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Login",
			"error": "Something went wrong. Please try again.",
		})
		return
	}

	h.setSessionCookie(c, token, form.Remember)
	c.Redirect(http.StatusFound, "/home")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// setSessionCookie attaches the session token. Without remember the cookie
// lives only for the browser session; with it, as long as the token itself.
func (h *Handler) setSessionCookie(c *gin.Context, token string, remember bool) {
	maxAge := 0
	if remember {
		maxAge = int(h.services.SessionTTL(true).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

// formErrorMessage turns a binding error into a short user-facing message.
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "email":
				return "Please enter a valid email address."
			case "eqfield":
				return "Passwords do not match."
			}
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return "Please check these fields: " + strings.Join(fields, ", ")
	}
	return "Invalid form submission."
}
