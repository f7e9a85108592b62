package dom_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-formcheck/pkg/dom"
)

func TestCounter_Monotonic(t *testing.T) {
	t.Parallel()

	counter := dom.NewCounter("")
	if got := counter.NextID(); got != "field-1" {
		t.Fatalf("first id = %q", got)
	}
	if got := counter.NextID(); got != "field-2" {
		t.Fatalf("second id = %q", got)
	}
}

func TestUUIDGenerator(t *testing.T) {
	t.Parallel()

	id := dom.UUIDGenerator{Prefix: "fc-"}.NextID()
	if !strings.HasPrefix(id, "fc-") {
		t.Fatalf("missing prefix: %q", id)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(id, "fc-")); err != nil {
		t.Fatalf("expected uuid suffix: %v", err)
	}
}

func TestEnsureKey(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<form>
		<input name="email" id="contact">
		<input id="phone">
		<input class="anon">
		<p id="f-1"></p>
	</form>`)
	inputs := dom.Inputs(doc)
	gen := dom.NewCounter("f-")

	if got := dom.EnsureKey(inputs[0], gen); got != "email" {
		t.Fatalf("expected name, got %q", got)
	}
	if got := dom.EnsureKey(inputs[1], gen); got != "phone" {
		t.Fatalf("expected id, got %q", got)
	}

	got := dom.EnsureKey(inputs[2], gen)
	if got != "f-2" {
		t.Fatalf("expected generated id to skip the taken f-1, got %q", got)
	}
	if dom.AttrValue(inputs[2], "id") != got {
		t.Fatalf("generated id was not written back")
	}
	if again := dom.EnsureKey(inputs[2], gen); again != got {
		t.Fatalf("key should be stable, got %q then %q", got, again)
	}
}

func TestEnsureKey_SkipsTakenNames(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<form>
		<input name="f-1">
		<select name="f-2"></select>
		<input class="anon">
	</form>`)
	inputs := dom.Inputs(doc)

	got := dom.EnsureKey(inputs[1], dom.NewCounter("f-"))
	if got != "f-3" {
		t.Fatalf("expected generated id to skip names f-1 and f-2, got %q", got)
	}
}
