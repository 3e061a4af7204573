package main

import (
	"net/mail"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/phoebuz/apps/api/echo"
	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/session"
)

// token signs a token the API accepts for the given student.
func (cli *commandLine) token(userID, email string) (string, error) {
	id := session.Identity{ID: core.CleanString(userID)}
	if email = core.CleanString(email, true /* lower */); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return "", errors.Wrapf(err, "parsing email %q", email)
		}
		id.Email = email
	}
	return echoapi.GenerateToken(cli.conf, echoapi.NewClaims(cli.conf, id))
}
