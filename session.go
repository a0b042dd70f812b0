// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"iter"

	"github.com/gviegas/anim/internal/logging"
)

// ID identifies a character in a session.
type ID int

// Session is a set of characters stepped together.
// The zero value is an empty session.
type Session struct {
	chars dataMap[ID, *Character]
}

// Insert adds c to s.
func (s *Session) Insert(c *Character) ID {
	id := s.chars.insert(c)
	logging.Logger().Debug(prefix+"character inserted", "name", c.Name, "id", int(id))
	return id
}

// Remove removes the character identified by id.
// It returns nil if there is no such character.
func (s *Session) Remove(id ID) *Character {
	if !s.chars.contains(id) {
		return nil
	}
	c := s.chars.remove(id)
	logging.Logger().Debug(prefix+"character removed", "name", c.Name, "id", int(id))
	return c
}

// Get returns the character identified by id, or nil.
func (s *Session) Get(id ID) *Character {
	if !s.chars.contains(id) {
		return nil
	}
	return *s.chars.get(id)
}

// Len returns the number of characters in s.
func (s *Session) Len() int { return s.chars.len() }

// All returns an iterator over the characters of s.
// s must not be modified during iteration.
func (s *Session) All() iter.Seq2[ID, *Character] {
	return func(yield func(ID, *Character) bool) {
		for _, e := range s.chars.data {
			if !yield(ID(e.id), e.data) {
				return
			}
		}
	}
}

// Update advances every character of s by dt seconds.
func (s *Session) Update(dt float32) {
	for _, e := range s.chars.data {
		e.data.Update(dt)
	}
}
