// Package cli renders persons on a terminal and collects interactive answers from its input.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/ports"
	"github.com/javatronic/lms/internal/presentation"
)

const howToInterrupt = "CTRL+C to exit"

// Console implements ports.IOs and ports.EventListener on line based input and output.
// Every prompt ends with Cancelled when ctx is done or the input is exhausted.
type Console struct {
	out    io.Writer
	in     io.Reader
	logger *zap.Logger
	table  bool

	once  sync.Once
	lines chan string
}

var (
	_ ports.IOs           = (*Console)(nil)
	_ ports.EventListener = (*Console)(nil)
)

// Option configures a Console.
type Option func(*Console)

// WithTable renders person lists as a table.
func WithTable(enabled bool) Option {
	return func(c *Console) {
		c.table = enabled
	}
}

// New creates a Console reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, logger *zap.Logger, opts ...Option) *Console {
	c := &Console{
		out:    out,
		in:     in,
		logger: logger,
		lines:  make(chan string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ShowPerson prints a person and its tags.
func (c *Console) ShowPerson(person *entities.Person) {
	for _, line := range presentation.PersonLines(person) {
		c.println(line)
	}
}

// ListPersons prints persons ordered by id, each followed by its relationships.
func (c *Console) ListPersons(persons []ports.ResolvedPerson) {
	if len(persons) == 0 {
		c.println("No Person registered yet.")
		return
	}
	if c.table {
		c.renderTable(persons)
		return
	}

	for _, rp := range presentation.SortByID(persons) {
		c.ShowPerson(rp.Person)
		for _, r := range rp.Relationships {
			c.println(presentation.RelationshipLine(r, rp.Person))
		}
	}
}

func (c *Console) renderTable(persons []ports.ResolvedPerson) {
	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Sex", "Name", "Created", "Tags", "Relationships")

	for _, rp := range presentation.SortByID(persons) {
		p := rp.Person
		sex := ""
		if p.HasSex() {
			sex = p.Sex().Name()
		}
		summaries := make([]string, 0, len(rp.Relationships))
		for _, r := range rp.Relationships {
			summaries = append(summaries, presentation.RelationshipSummary(r, p))
		}
		if err := table.Append(
			strconv.Itoa(p.ID),
			sex,
			p.String(),
			entities.FormatCreated(p.Created),
			strings.Join(p.Tags, ", "),
			strings.Join(summaries, "\n"),
		); err != nil {
			c.logger.Error("failed to add table row", zap.Int("id", p.ID), zap.Error(err))
		}
	}

	if err := table.Render(); err != nil {
		c.logger.Error("failed to render table", zap.Error(err))
	}
}

// SelectPerson prints candidates and reads the id of the chosen one.
func (c *Console) SelectPerson(ctx context.Context, candidates []*entities.Person) (*entities.Person, ports.Outcome) {
	if len(candidates) == 0 {
		return nil, ports.NotFound
	}

	c.println("Input id of person to update:")
	for _, p := range presentation.SortPersonsByID(candidates) {
		c.ShowPerson(p)
	}
	c.println(howToInterrupt)

	for {
		text, ok := c.readLine(ctx)
		if !ok {
			return nil, ports.Cancelled
		}

		id, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			c.println("Not an integer.")
			continue
		}
		for _, p := range candidates {
			if p.ID == id {
				return p, ports.Done
			}
		}
		c.println("Not a valid id.")
	}
}

// UpdatePerson asks whether to update the names or the tags of person, then reads the new values.
// person is modified in place.
func (c *Console) UpdatePerson(ctx context.Context, person *entities.Person) (*entities.Person, ports.Outcome) {
	c.println("Hit ENTER to update first name and last name, T (or t) to update tags")
	c.println(howToInterrupt)

	for {
		text, ok := c.readLine(ctx)
		if !ok {
			return nil, ports.Cancelled
		}

		switch text {
		case "":
			return c.updateNames(ctx, person)
		case "t", "T":
			return c.updateTags(ctx, person)
		default:
			c.println("Just hit ENTER or T (or t)")
		}
	}
}

func (c *Console) updateNames(ctx context.Context, person *entities.Person) (*entities.Person, ports.Outcome) {
	c.println("Input new first name and last name to update:")
	c.ShowPerson(person)
	c.println(howToInterrupt)

	for {
		text, ok := c.readLine(ctx)
		if !ok {
			return nil, ports.Cancelled
		}

		words := strings.Split(text, " ")
		if len(words) > 2 {
			c.println("Too many words.")
			continue
		}
		if words[0] == "" {
			c.println("First name can't be empty.")
			continue
		}

		person.Firstname = words[0]
		person.Lastname = ""
		if len(words) == 2 {
			person.Lastname = words[1]
		}
		return person, ports.Done
	}
}

func (c *Console) updateTags(ctx context.Context, person *entities.Person) (*entities.Person, ports.Outcome) {
	c.println("Input new tags, separated by comma:")
	c.println(howToInterrupt)

	text, ok := c.readLine(ctx)
	if !ok {
		return nil, ports.Cancelled
	}

	person.Tags = presentation.ParseTags(text)
	return person, ports.Done
}

// CreatingPerson announces the creation of person.
func (c *Console) CreatingPerson(person *entities.Person) {
	c.println(fmt.Sprintf("Create Person %s.", person))
}

// DeletingPerson asks for confirmation before person is deleted.
func (c *Console) DeletingPerson(ctx context.Context, person *entities.Person) ports.Outcome {
	c.println("Hit ENTER to delete:")
	c.ShowPerson(person)
	c.println(howToInterrupt)
	return c.hitEnter(ctx)
}

// CreatingLink asks for confirmation before left and right are linked.
func (c *Console) CreatingLink(ctx context.Context, definition *entities.RelationshipDefinition, left, right *entities.Person) ports.Outcome {
	c.println(fmt.Sprintf("Hit ENTER to link as %q:", definition.Name))
	c.ShowPerson(left)
	c.ShowPerson(right)
	c.println(howToInterrupt)
	return c.hitEnter(ctx)
}

// ConfiguredFromAlias announces that the sex of person was deduced from alias.
func (c *Console) ConfiguredFromAlias(person *entities.Person, alias *entities.RelationshipAlias) {
	c.println(fmt.Sprintf("Sex of %s set to %s from alias %s", person, person.Sex(), alias.Name))
}

// DeletingRelationship asks for confirmation before a relationship of person is deleted.
func (c *Console) DeletingRelationship(ctx context.Context, relationship *entities.Relationship, person *entities.Person) ports.Outcome {
	c.println("Hit ENTER to delete:")
	c.println(presentation.RelationshipLine(relationship, person))
	c.println(howToInterrupt)
	return c.hitEnter(ctx)
}

func (c *Console) hitEnter(ctx context.Context) ports.Outcome {
	for {
		text, ok := c.readLine(ctx)
		if !ok {
			return ports.Cancelled
		}
		if text == "" {
			return ports.Done
		}
		c.println("Just hit ENTER")
	}
}

// readLine returns the next input line. It reports false once ctx is done or the input is exhausted.
func (c *Console) readLine(ctx context.Context) (string, bool) {
	c.once.Do(func() { go c.scan() })

	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		return line, ok
	}
}

// scan feeds lines so that reads can be abandoned when ctx is done.
func (c *Console) scan() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- strings.TrimSuffix(scanner.Text(), "\r")
	}
	if err := scanner.Err(); err != nil {
		c.logger.Debug("input closed", zap.Error(err))
	}
	close(c.lines)
}

func (c *Console) println(line string) {
	fmt.Fprintln(c.out, line)
}
