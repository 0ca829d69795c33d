// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"github.com/gin-gonic/gin"
)

// AdminIdentity is the caller authenticated by AdminRequired.
// Handlers use it without depending on token details.
type AdminIdentity interface {
	// Subject returns the token subject (who minted the token for whom).
	Subject() string
	// IsAuthenticated returns true if AdminRequired accepted the request.
	IsAuthenticated() bool
}

type adminIdentity struct {
	subject       string
	authenticated bool
}

func (i adminIdentity) Subject() string       { return i.subject }
func (i adminIdentity) IsAuthenticated() bool { return i.authenticated }

// GetAdmin extracts the AdminIdentity from a Gin context.
// Returns an unauthenticated identity when AdminRequired did not run.
func GetAdmin(c *gin.Context) AdminIdentity {
	raw, ok := c.Get(ContextAdminSubjectKey)
	if !ok {
		return adminIdentity{}
	}
	subject, _ := raw.(string)
	return adminIdentity{subject: subject, authenticated: true}
}
