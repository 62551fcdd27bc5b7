package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Participant is a store that can take part in a Unit.
type Participant interface {
	Persist(ctx context.Context) error
	checkpoint() (restore func())
}

// Unit groups the mutations of several stores so they become durable
// together. Begin records a checkpoint of every participant; Commit
// persists them in order and, if any write fails, restores every
// participant to its checkpoint and rewrites the ones already saved.
type Unit struct {
	parts    []Participant
	restores []func()
	done     bool
}

func Begin(parts ...Participant) *Unit {
	u := &Unit{parts: parts, restores: make([]func(), len(parts))}
	for i, p := range parts {
		u.restores[i] = p.checkpoint()
	}
	return u
}

// Rollback discards in-memory changes made since Begin. It is safe to call
// after Commit, in which case it does nothing.
func (u *Unit) Rollback() {
	if u.done {
		return
	}
	u.done = true
	for _, restore := range u.restores {
		restore()
	}
}

func (u *Unit) Commit(ctx context.Context) error {
	if u.done {
		return errors.New("unit already finished")
	}
	for i, p := range u.parts {
		if err := p.Persist(ctx); err != nil {
			u.Rollback()
			// The caller's deadline may be what failed the write.
			undo := context.WithoutCancel(ctx)
			for _, written := range u.parts[:i] {
				if rerr := written.Persist(undo); rerr != nil {
					log.Printf("store: compensation write failed: %v", rerr)
				}
			}
			return fmt.Errorf("commit: %w", err)
		}
	}
	u.done = true
	return nil
}
