// Package git provides a high-level wrapper over a go-git object store.
// This file contains conventional commit classification for loaded commits.
package git

import (
	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// Conventional parses the commit message as a conventional commit and
// returns its structured form (type, optional scope, description, breaking
// change marker). It fails when the message does not follow the
// conventional commit format; callers that only want classification when
// available should treat the error as "not conventional".
func (c Commit) Conventional() (*conventionalcommits.ConventionalCommit, error) {
	machine := parser.NewMachine(
		conventionalcommits.WithTypes(conventionalcommits.TypesConventional),
		conventionalcommits.WithBestEffort(),
	)

	msg, err := machine.Parse([]byte(c.Message))
	if err != nil {
		return nil, WrapErrorf(err, "commit %s message is not a conventional commit", c.Hash)
	}

	cc, ok := msg.(*conventionalcommits.ConventionalCommit)
	if !ok {
		return nil, WrapErrorf(ErrInvalidRef, "commit %s produced an unexpected message type", c.Hash)
	}

	return cc, nil
}
