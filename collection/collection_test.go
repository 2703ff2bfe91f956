package collection

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	. "github.com/fulldump/biff"
	"github.com/google/uuid"

	"github.com/shelfdb/shelfdb/record"
)

type User struct {
	record.Meta
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func newUser(name string) User {
	return User{Meta: record.NewMeta(), Name: name}
}

func TestLoadMissingFile(t *testing.T) {
	Environment(func(filename string) {

		c, err := Load[User](context.Background(), filename)

		AssertNil(err)
		AssertEqual(c.Len(), 0)
		AssertEqual(c.Filename(), filename)
	})
}

func TestLoadEmptyFile(t *testing.T) {
	Environment(func(filename string) {

		os.WriteFile(filename, []byte{}, 0666)

		c, err := Load[User](context.Background(), filename)

		AssertNil(err)
		AssertEqual(c.Len(), 0)
	})
}

func TestLoadMalformedFile(t *testing.T) {
	Environment(func(filename string) {

		os.WriteFile(filename, []byte(`[{"id": broken`), 0666)

		c, err := Load[User](context.Background(), filename)

		AssertTrue(errors.Is(err, ErrMalformed))
		AssertNil(c)
	})
}

func TestRoundTrip(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		c := New[User](filename)
		a := newUser("a")
		b := newUser("b")
		z := newUser("z")
		c.Insert(a)
		c.InsertMany(b, z)

		// Run
		AssertNil(c.Write(context.Background()))
		reloaded, err := Load[User](context.Background(), filename)

		// Check
		AssertNil(err)
		AssertEqual(reloaded.Rows(), []User{a, b, z})
	})
}

func TestWriteIsCompactAndOmitsEmptyFields(t *testing.T) {
	Environment(func(filename string) {

		c := New[User](filename)
		u := User{Meta: record.Meta{Id: uuid.MustParse("00000000-0000-0000-0000-000000000001")}}
		c.Insert(u)

		AssertNil(c.Write(context.Background()))

		content, _ := os.ReadFile(filename)
		AssertEqual(strings.TrimSpace(string(content)), `[{"id":"00000000-0000-0000-0000-000000000001"}]`)
	})
}

func TestReplaceAll(t *testing.T) {
	c := New[User]("")
	c.Insert(newUser("old"))

	items := []User{newUser("a"), newUser("b")}
	c.ReplaceAll(items)

	AssertEqual(c.Rows(), items)

	// Mutating the input slice must not leak into the collection
	items[0] = newUser("mutated")
	AssertEqual(c.Rows()[0].Name, "a")
}

func TestUpdateByID(t *testing.T) {
	c := New[User]("")
	a := newUser("a")
	b := newUser("b")
	c.InsertMany(a, b)

	// Miss: sequence unchanged
	AssertFalse(c.UpdateByID(uuid.New(), newUser("nope")))
	AssertEqual(c.Rows(), []User{a, b})

	// Hit: replaced in place, neighbors untouched
	z := User{Meta: a.Meta, Name: "z"}
	AssertTrue(c.UpdateByID(a.Id, z))
	AssertEqual(c.Rows(), []User{z, b})
}

func TestRemoveByID(t *testing.T) {
	c := New[User]("")
	a := newUser("a")
	dup := User{Meta: a.Meta, Name: "dup"}
	b := newUser("b")
	c.InsertMany(a, dup, b)

	AssertFalse(c.RemoveByID(uuid.New()))
	AssertEqual(c.Len(), 3)

	// Only the first match goes away
	AssertTrue(c.RemoveByID(a.Id))
	AssertEqual(c.Rows(), []User{dup, b})
}

func TestRemoveOne(t *testing.T) {
	c := New[User]("")
	a := newUser("a")
	b := newUser("b")
	c.InsertMany(a, b)

	AssertFalse(c.RemoveOne(newUser("stranger")))
	AssertEqual(c.Len(), 2)

	// Equality is identity: field values are ignored
	AssertTrue(c.RemoveOne(User{Meta: a.Meta, Name: "whatever"}))
	AssertEqual(c.Rows(), []User{b})
}

func TestRetainAndRemoveAllAreComplementary(t *testing.T) {
	users := []User{newUser("a"), newUser("b"), newUser("a"), newUser("c")}
	isA := func(u User) bool { return u.Name == "a" }

	retained := New[User]("")
	retained.ReplaceAll(users)
	retained.Retain(isA)
	AssertEqual(retained.Len(), 2)
	for _, u := range retained.Rows() {
		AssertEqual(u.Name, "a")
	}

	removed := New[User]("")
	removed.ReplaceAll(users)
	removed.RemoveAll(isA)
	AssertEqual(removed.Len(), 2)

	AssertEqual(retained.Len()+removed.Len(), len(users))

	// Retain(P) then RemoveAll(P) leaves nothing
	retained.RemoveAll(isA)
	AssertEqual(retained.Len(), 0)
}

func TestForEachOrder(t *testing.T) {
	c := New[User]("")
	c.InsertMany(newUser("a"), newUser("b"), newUser("c"))

	names := []string{}
	c.ForEach(func(u User) {
		names = append(names, u.Name)
	})

	AssertEqual(names, []string{"a", "b", "c"})
}

func TestAsMapLastWriteWins(t *testing.T) {
	c := New[User]("")
	a := newUser("a")
	dup := User{Meta: a.Meta, Name: "dup"}
	c.InsertMany(a, dup)

	m := c.AsMap()
	AssertEqual(len(m), 1)
	AssertEqual(m[a.Id].Name, "dup")
}

func TestClearAndWriteIsIdempotent(t *testing.T) {
	Environment(func(filename string) {

		c := New[User](filename)
		c.InsertMany(newUser("a"), newUser("b"))
		AssertNil(c.Write(context.Background()))

		AssertNil(c.ClearAndWrite(context.Background()))
		first, _ := os.ReadFile(filename)

		AssertNil(c.ClearAndWrite(context.Background()))
		second, _ := os.ReadFile(filename)

		AssertEqual(strings.TrimSpace(string(first)), "[]")
		AssertEqual(string(first), string(second))
		AssertEqual(c.Len(), 0)
	})
}

func TestCancellation(t *testing.T) {
	Environment(func(filename string) {

		c := New[User](filename)
		c.Insert(newUser("a"))
		AssertNil(c.Write(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, errLoad := Load[User](ctx, filename)
		AssertTrue(errors.Is(errLoad, context.Canceled))

		errWrite := c.Write(ctx)
		AssertTrue(errors.Is(errWrite, context.Canceled))
	})
}

func TestBufferSizeIsMonotonic(t *testing.T) {
	sizes := []int64{0, 4 << 10, 64 << 10, 1 << 20, 8 << 20, 1 << 30}
	previous := 0
	for _, size := range sizes {
		b := bufferSize(size)
		AssertTrue(b >= previous)
		previous = b
	}
	AssertEqual(bufferSize(0), minBufferSize)
	AssertEqual(bufferSize(1<<30), maxBufferSize)
}
