// Package fakedata produces the random contact details the "random" contact
// us steps type in.
package fakedata

import (
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator yields plausible personal data.
type Generator interface {
	FirstName() string
	LastName() string
	Email() string
}

// Faker is a Generator backed by gofakeit. A zero seed picks a random one.
type Faker struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

var _ Generator = (*Faker)(nil)

func New(seed uint64) *Faker {
	return &Faker{faker: gofakeit.New(seed)}
}

func (f *Faker) FirstName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faker.FirstName()
}

func (f *Faker) LastName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faker.LastName()
}

func (f *Faker) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faker.Email()
}
