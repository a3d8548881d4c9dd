package a

import "context"

type Person struct {
	ID int
}

type Storage interface {
	StorePersons(ctx context.Context, persons []*Person) error
	ReadPersons(ctx context.Context) ([]*Person, error)
	UpdatePerson(ctx context.Context, person *Person) error
}

func bad(ctx context.Context, persons []*Person, s Storage) {
	for _, p := range persons {
		s.StorePersons(ctx, []*Person{p}) // want "StorePersons called inside loop"
	}
	for i := 0; i < 3; i++ {
		s.ReadPersons(ctx) // want "ReadPersons called inside loop"
	}
}

func good(ctx context.Context, persons []*Person, s Storage) {
	for _, p := range persons {
		s.UpdatePerson(ctx, p)
	}
	s.StorePersons(ctx, persons)

	for _, p := range persons {
		store := func() { s.StorePersons(ctx, []*Person{p}) }
		_ = store
	}
}
