package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/blockhub/internal/api/middleware"
	"github.com/GriffinCanCode/blockhub/internal/domain/install"
	"github.com/GriffinCanCode/blockhub/internal/domain/stacks"
	"github.com/GriffinCanCode/blockhub/internal/shared/types"
)

const preferenceMaxAge = int(365 * 24 * time.Hour / time.Second)

// Waitlist handles the demo waitlist form. Joining twice is not an error.
func (h *Handlers) Waitlist(c *gin.Context) {
	var req types.WaitlistRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.Result{Message: "Invalid request"})
		return
	}

	err := h.waitlist.Submit(c.Request.Context(), req.Email)
	var verr *stacks.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, types.Result{Success: true, Message: "You're on the list!"})
	case errors.Is(err, stacks.ErrAlreadyJoined):
		c.JSON(http.StatusOK, types.Result{Success: true, Message: "You're already on the list."})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, types.Result{Message: verr.Message})
	default:
		h.logError(c, "Waitlist submission failed", err)
		c.JSON(http.StatusInternalServerError, types.Result{Message: "Something went wrong"})
	}
}

// SignIn handles the demo sign-in form
func (h *Handlers) SignIn(c *gin.Context) {
	var req types.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.Result{Message: "Invalid request"})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), stacks.Credentials{Email: req.Email, Password: req.Password})
	var verr *stacks.ValidationError
	switch {
	case err == nil:
		h.logger.Info("Demo sign-in", zap.String("session_id", session.ID.String()))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signed in", "session": session})
	case errors.Is(err, stacks.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, types.Result{Message: "Invalid email or password"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, types.Result{Message: verr.Message})
	default:
		h.logError(c, "Sign-in failed", err)
		c.JSON(http.StatusInternalServerError, types.Result{Message: "Something went wrong"})
	}
}

// SetPackageManager stores the install tool preference. Form posts are
// redirected back; other requests get JSON.
func (h *Handlers) SetPackageManager(c *gin.Context) {
	tool := install.ParseTool(c.PostForm("tool"))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.PackageManagerCookie, string(tool), preferenceMaxAge, "/", "", false, false)

	if redirect := c.PostForm("redirect"); redirect != "" {
		c.Redirect(http.StatusSeeOther, safeRedirect(redirect))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tool": tool})
}

// safeRedirect only allows local absolute paths
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return "/"
	}
	return target
}
