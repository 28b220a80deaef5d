package tree

import (
	stderrors "errors"
	"testing"

	merrors "github.com/vango-dev/attrmerge/internal/errors"
	"github.com/vango-dev/attrmerge/pkg/attrs"
)

func TestInterceptCapturesAndSpreads(t *testing.T) {
	header := Element("th", attrs.NewBundle(attrs.Class("col")))
	body := Element("td", nil)
	wrapper, handle := Intercept("Column", Element("table", nil, header, body))

	err := Compose(attrs.NewBundle(
		attrs.ClassToggle("sortable", true),
		attrs.Attr("data-col", "name"),
	), wrapper)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	// Nothing auto-forwards; the body places the capture on the header.
	if err := handle.Spread(header); err != nil {
		t.Fatalf("Spread() error: %v", err)
	}
	if err := Finalize(wrapper); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	snap := header.Snapshot()
	if !snap.HasClass("sortable") || snap.Attrs["data-col"] != "name" {
		t.Errorf("spread directives missing from target: %+v", snap)
	}
	if body.Snapshot().HasClass("sortable") {
		t.Error("directives leaked to a node the spread never targeted")
	}
}

func TestInterceptDoubleSpread(t *testing.T) {
	target := Element("div", nil)
	wrapper, handle := Intercept("Wrap", target)

	if err := Compose(attrs.NewBundle(attrs.ClassToggle("x", true)), wrapper); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if err := handle.Spread(target); err != nil {
		t.Fatalf("first Spread() error: %v", err)
	}

	err := handle.Spread(target)
	if !stderrors.Is(err, merrors.New("E003")) {
		t.Errorf("second Spread() = %v, want E003", err)
	}
	if !handle.Consumed() {
		t.Error("Consumed() = false after spread")
	}
}

func TestInterceptUnconsumedIsSilent(t *testing.T) {
	target := Element("div", attrs.NewBundle(attrs.Class("base")))
	wrapper, handle := Intercept("Wrap", target)
	rec := &recorder{}

	err := Compose(attrs.NewBundle(
		attrs.ClassToggle("captured", true),
		attrs.Attr("title", "t"),
	), wrapper)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	// Handle never spread: finalize discards without error.
	if err := Finalize(wrapper, WithObserver(rec)); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	snap := target.Snapshot()
	if snap.HasClass("captured") {
		t.Error("captured directives reached the target without a spread")
	}
	if got := snap.ClassAttr(); got != "base" {
		t.Errorf("ClassAttr() = %q, want %q", got, "base")
	}
	if len(rec.drops) != 1 || rec.drops[0] != DropUnspreadInterceptor {
		t.Errorf("drops = %v, want one unspread-interceptor drop", rec.drops)
	}
	if handle.Consumed() {
		t.Error("Consumed() = true for a handle never spread")
	}
}

func TestInterceptEmptySpread(t *testing.T) {
	target := Element("div", nil)
	_, handle := Intercept("Wrap", target)

	// Spreading a handle that captured nothing is a no-op, not an error.
	if err := handle.Spread(target); err != nil {
		t.Fatalf("Spread() error: %v", err)
	}
	if err := Finalize(target); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
}

func TestInterceptCapacityChecked(t *testing.T) {
	target := Element("div", nil)
	wrapper, _ := Intercept("Wrap", target)

	b := attrs.NewBundle()
	for i := 0; i <= attrs.DefaultCapacity; i++ {
		b.Push(attrs.ClassToggle(token(i), true))
	}

	err := Compose(b, wrapper)
	if !stderrors.Is(err, merrors.New("E001")) {
		t.Errorf("Compose() = %v, want E001", err)
	}
}
