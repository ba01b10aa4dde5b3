// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package slugs

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/atadizayn/atasite/internal/cache"
	"github.com/atadizayn/atasite/internal/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestResolver() *Resolver {
	return NewResolver(Options{DefaultLanguage: "tr", FuzzyFallback: true})
}

func TestDeriveIdempotent(t *testing.T) {
	r := newTestResolver()
	inputs := []string{"Örnek Ürün", "  Hello,   World!  ", "ŞİŞE--Kapak__", "", "   ", "çay & kahve"}
	for _, in := range inputs {
		once := r.Derive(in)
		if twice := r.Derive(once); twice != once {
			t.Errorf("Derive not idempotent for %q: %q then %q", in, once, twice)
		}
	}
	if got := r.Derive("   "); got != "" {
		t.Errorf("Derive(blank) = %q, want empty", got)
	}
}

func TestAssignUnique_SequentialSuffix(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()

	want := []string{"widget", "widget-2", "widget-3"}
	for i, w := range want {
		e := post("Widget")
		if err := r.Backfill(ctx, st, e); err != nil {
			t.Fatalf("Backfill #%d: %v", i, err)
		}
		if e.slugs.TR != w || e.slugs.Slug != w {
			t.Fatalf("record #%d slugs = %+v, want %q", i, e.slugs, w)
		}
		st.save(e)
	}
}

func TestAssignUnique_ChecksEveryField(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	st.put(&postKind, 1, Set{Slug: "kupa", EN: "widget", TR: "kupa"})

	got, err := r.AssignUnique(ctx, st, &postKind, FieldFor("tr"), "widget", 0)
	if err != nil {
		t.Fatalf("AssignUnique: %v", err)
	}
	if got != "widget-2" {
		t.Errorf("got %q, want widget-2", got)
	}
}

func TestAssignUnique_ExcludesSelf(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	st.put(&postKind, 7, Set{Slug: "widget", TR: "widget"})

	got, err := r.AssignUnique(ctx, st, &postKind, FieldFor("en"), "widget", 7)
	if err != nil {
		t.Fatalf("AssignUnique: %v", err)
	}
	if got != "widget" {
		t.Errorf("got %q, want widget", got)
	}
}

func TestAssignUnique_EmptyBase(t *testing.T) {
	got, err := newTestResolver().AssignUnique(context.Background(), newMemStore(), &postKind, FieldDefault, "", 0)
	if err != nil || got != "" {
		t.Errorf("AssignUnique(\"\") = %q, %v", got, err)
	}
}

func TestAssignUnique_DistinctAcrossRecords(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()

	titles := []Text{
		{Base: "Kupa", TR: "Kupa", EN: "Cup"},
		{Base: "Cup", TR: "Cup", EN: "Kupa"},
		{Base: "Kupa", TR: "Kupa", EN: "Kupa"},
	}
	for _, title := range titles {
		e := &entity{kind: &postKind, source: title}
		if err := r.Backfill(ctx, st, e); err != nil {
			t.Fatalf("Backfill: %v", err)
		}
		st.save(e)
	}

	owner := make(map[string]int64)
	for _, id := range st.ids(&postKind) {
		for _, v := range st.records[postKind.Name][id].Values() {
			if other, ok := owner[v]; ok && other != id {
				t.Errorf("slug %q shared by records %d and %d", v, other, id)
			}
			owner[v] = id
		}
	}
}

func TestBackfill_LanguageSlugsBeforeDefault(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()
	e := &entity{
		kind:   &postKind,
		source: Text{Base: "Something Else", TR: "Örnek Ürün", EN: "Sample Product"},
	}
	if err := r.Backfill(ctx, newMemStore(), e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	want := Set{Slug: "ornek-urun", EN: "sample-product", TR: "ornek-urun"}
	if e.slugs != want {
		t.Errorf("slugs = %+v, want %+v", e.slugs, want)
	}
}

func TestBackfill_DefaultFromBaseSource(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()
	e := &entity{kind: &postKind, source: Text{Base: "Only Base", EN: "English Title"}}
	if err := r.Backfill(ctx, newMemStore(), e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	want := Set{Slug: "only-base", EN: "english-title"}
	if e.slugs != want {
		t.Errorf("slugs = %+v, want %+v", e.slugs, want)
	}
}

func TestBackfill_NormalizesExplicitSlugs(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()
	e := post("Başlık")
	e.slugs.EN = "  My Custom SLUG "
	if err := r.Backfill(ctx, newMemStore(), e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	if e.slugs.EN != "my-custom-slug" {
		t.Errorf("EN = %q, want my-custom-slug", e.slugs.EN)
	}
	if e.slugs.TR != "baslik" || e.slugs.Slug != "baslik" {
		t.Errorf("slugs = %+v", e.slugs)
	}
}

func TestBackfill_ImmutableRestoresPersisted(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	st.put(&postKind, 3, Set{Slug: "eski-baslik", TR: "eski-baslik"})

	e := post("Yeni Başlık")
	e.id = 3
	e.source.EN = "New Title"
	e.slugs = Set{Slug: "hacked", TR: "yeni-baslik"}

	if err := r.Backfill(ctx, st, e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	want := Set{Slug: "eski-baslik", EN: "new-title", TR: "eski-baslik"}
	if e.slugs != want {
		t.Errorf("slugs = %+v, want %+v", e.slugs, want)
	}
}

func TestBackfill_PolicyBackfillKeepsIncoming(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	st.put(&productKind, 4, Set{Slug: "eski", TR: "eski", EN: "old"})

	e := &entity{
		kind:   &productKind,
		id:     4,
		source: Text{Base: "Yeni", TR: "Yeni", EN: "New"},
		slugs:  Set{Slug: "yeni", TR: "yeni"},
	}
	if err := r.Backfill(ctx, st, e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	want := Set{Slug: "yeni", EN: "new", TR: "yeni"}
	if e.slugs != want {
		t.Errorf("slugs = %+v, want %+v", e.slugs, want)
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()
	e := &entity{kind: &postKind, content: Text{TR: "<p>&nbsp;</p>"}}

	err := r.Validate(ctx, newMemStore(), e)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, field := range []string{"title_tr", "content_tr"} {
		if !verr.Has(field) {
			t.Errorf("missing error for %s in %v", field, verr.FieldNames())
		}
	}
	if verr.Len() != 2 {
		t.Errorf("expected 2 errors, got %v", verr.FieldNames())
	}
}

func TestValidate_ReservedAnyCasing(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()

	for _, title := range []string{"admin", "Admin", "ADMIN"} {
		e := post(title)
		if err := r.Backfill(ctx, st, e); err != nil {
			t.Fatalf("Backfill: %v", err)
		}
		err := r.Validate(ctx, st, e)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected validation error, got %v", title, err)
		}
		for _, field := range []string{"slug", "slug_tr"} {
			if fe := verr.Fields[field]; fe.Key != MsgSlugReserved {
				t.Errorf("%q: %s error = %q, want %q", title, field, fe.Key, MsgSlugReserved)
			}
		}
	}

	if !r.IsReserved("ADMIN") {
		t.Error("IsReserved should ignore casing")
	}
}

func TestValidate_SlugRequiredWhenTitleHasNoSlugForm(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()

	for _, title := range []string{"!!!", "🚀🚀", "???"} {
		e := post(title)
		if err := r.Backfill(ctx, st, e); err != nil {
			t.Fatalf("Backfill: %v", err)
		}
		if e.slugs.Slug != "" {
			t.Fatalf("%q: slug = %q, want empty", title, e.slugs.Slug)
		}
		err := r.Validate(ctx, st, e)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected validation error, got %v", title, err)
		}
		if fe := verr.Fields["slug"]; fe.Key != MsgSlugRequired {
			t.Errorf("%q: slug error = %+v, want %q", title, fe, MsgSlugRequired)
		}
	}

	// An explicit slug rescues a title without a slug form.
	e := post("!!!")
	e.slugs = Set{Slug: "duyuru"}
	if err := r.Backfill(ctx, st, e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	if err := r.Validate(ctx, st, e); err != nil {
		t.Errorf("Validate with explicit slug = %v", err)
	}
}

func TestValidate_RejectsMalformedSlug(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()

	e := post("Widget")
	e.slugs = Set{Slug: "widget", TR: "widget", EN: "bad slug!"}
	err := r.Validate(ctx, newMemStore(), e)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fe := verr.Fields["slug_en"]; fe.Key != MsgSlugInvalid {
		t.Errorf("slug_en error = %+v, want %q", fe, MsgSlugInvalid)
	}
	if verr.Has("slug") || verr.Has("slug_tr") {
		t.Errorf("unexpected errors: %v", verr.FieldNames())
	}
}

func TestNewResolver_ReservedInSlugForm(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := NewResolver(Options{
		DefaultLanguage: "tr",
		Reserved:        []string{"kitchen_sink", " Site Map "},
	})

	for _, value := range []string{"kitchen-sink", "Kitchen_Sink", "site-map"} {
		if !r.IsReserved(value) {
			t.Errorf("IsReserved(%q) = false", value)
		}
	}

	e := post("Kitchen Sink")
	if err := r.Backfill(ctx, st, e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	err := r.Validate(ctx, st, e)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fe := verr.Fields["slug"]; fe.Key != MsgSlugReserved {
		t.Errorf("slug error = %+v, want %q", fe, MsgSlugReserved)
	}
}

func TestValidate_SlugTaken(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	st.put(&postKind, 1, Set{Slug: "widget", TR: "widget", EN: "gadget"})

	e := post("Başka")
	e.slugs = Set{EN: "gadget"}
	if err := r.Backfill(ctx, st, e); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	err := r.Validate(ctx, st, e)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fe := verr.Fields["slug_en"]; fe.Key != "validation.slug_taken.blog_post" {
		t.Errorf("slug_en error = %+v", fe)
	}
	if verr.Has("slug") || verr.Has("slug_tr") {
		t.Errorf("unexpected errors: %v", verr.FieldNames())
	}

	// The record itself may keep its own slugs.
	self := post("Widget")
	self.id = 1
	self.slugs = Set{Slug: "widget", TR: "widget", EN: "gadget"}
	if err := r.Validate(ctx, st, self); err != nil {
		t.Errorf("Validate(self) = %v", err)
	}
}

func TestValidate_ProductRules(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver()
	e := &entity{
		kind:   &productKind,
		source: Text{Base: "Stand", TR: "Stand"},
		slugs:  Set{Slug: "stand", TR: "stand"},
	}

	err := r.Validate(ctx, newMemStore(), e)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"description", "name_en", "rich_text"}
	got := verr.FieldNames()
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fields = %v, want %v", got, want)
		}
	}

	e.source.EN = "Stand"
	e.content = Text{EN: "<b>Metal</b>"}
	if err := r.Validate(ctx, newMemStore(), e); err != nil {
		t.Errorf("expected valid product, got %v", err)
	}
}

func TestValidationError_Messages(t *testing.T) {
	verr := NewValidationError("product")
	verr.Add("name_en", MsgSourceRequired, "lang.en")
	verr.Add("name_en", MsgSlugReserved)

	en := verr.Messages("en")
	if en["name_en"] != "This field is required in English." {
		t.Errorf("en message = %q", en["name_en"])
	}
	tr := verr.Messages("tr")
	if tr["name_en"] == "" || tr["name_en"] == en["name_en"] {
		t.Errorf("tr message = %q", tr["name_en"])
	}
	if verr.Error() != "validation failed for product: name_en" {
		t.Errorf("Error() = %q", verr.Error())
	}
	if NewValidationError("x").Err() != nil {
		t.Error("empty ValidationError should be nil error")
	}
}

func TestResolveInbound_LanguageThenDefault(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	st.put(&postKind, 1, Set{Slug: "ornek", TR: "ornek", EN: "example"})
	st.put(&postKind, 2, Set{Slug: "diger", TR: "diger", EN: "other"})

	tests := []struct {
		slug, lang string
		want       int64
	}{
		{"ornek", "tr", 1},
		{"ornek", "en", 1},
		{"example", "en", 1},
		{"ORNEK", "tr", 1},
		{"other", "en", 2},
		{"diger", "de", 2},
	}
	for _, tt := range tests {
		got, err := r.ResolveInbound(ctx, st, &postKind, tt.slug, tt.lang)
		if err != nil {
			t.Errorf("ResolveInbound(%q, %q): %v", tt.slug, tt.lang, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveInbound(%q, %q) = %d, want %d", tt.slug, tt.lang, got, tt.want)
		}
	}
}

func TestResolveInbound_FuzzyFallback(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.put(&postKind, 1, Set{Slug: "ornek", TR: "ornek", EN: "example"})

	fuzzy := newTestResolver()
	id, err := fuzzy.ResolveInbound(ctx, st, &postKind, "example", "tr")
	if err != nil || id != 1 {
		t.Errorf("fuzzy lookup = %d, %v", id, err)
	}

	strict := NewResolver(Options{DefaultLanguage: "tr"})
	if _, err := strict.ResolveInbound(ctx, st, &postKind, "example", "tr"); !errors.Is(err, ErrNotFound) {
		t.Errorf("strict lookup err = %v, want ErrNotFound", err)
	}
}

func TestResolveInbound_NotFound(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	r := newTestResolver()
	for _, slug := range []string{"missing", "", "   "} {
		if _, err := r.ResolveInbound(ctx, st, &postKind, slug, "en"); !errors.Is(err, ErrNotFound) {
			t.Errorf("ResolveInbound(%q) err = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestResolveInbound_CacheAndInvalidate(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	r := NewResolver(Options{DefaultLanguage: "tr", Cache: mc})
	st.put(&postKind, 1, Set{Slug: "ornek", TR: "ornek"})

	if _, err := r.ResolveInbound(ctx, st, &postKind, "ornek", "tr"); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	before := st.lookups
	if _, err := r.ResolveInbound(ctx, st, &postKind, "ornek", "tr"); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if st.lookups != before {
		t.Errorf("expected cached lookup, store hit %d times", st.lookups-before)
	}

	// A switch of language is a separate lookup.
	if _, err := r.ResolveInbound(ctx, st, &postKind, "ornek", "en"); err != nil {
		t.Fatalf("en lookup: %v", err)
	}
	if st.lookups == before {
		t.Error("expected store lookup for a different language")
	}

	r.Invalidate(ctx, &postKind)
	delete(st.records[postKind.Name], 1)
	if _, err := r.ResolveInbound(ctx, st, &postKind, "ornek", "tr"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after invalidate err = %v, want ErrNotFound", err)
	}
}

func TestOutboundSlug(t *testing.T) {
	r := newTestResolver()
	tests := []struct {
		name string
		set  Set
		lang string
		want string
	}{
		{"language match", Set{Slug: "ornek", EN: "example", TR: "ornek"}, "en", "example"},
		{"falls to default language", Set{Slug: "ornek", TR: "ornek"}, "en", "ornek"},
		{"default language beats bare slug", Set{Slug: "bare", TR: "turkce"}, "en", "turkce"},
		{"bare slug", Set{Slug: "bare"}, "en", "bare"},
		{"any field", Set{EN: "only-en"}, "de", "only-en"},
		{"unsupported language", Set{Slug: "s", EN: "e", TR: "t"}, "fr", "t"},
		{"empty", Set{}, "tr", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &entity{kind: &postKind, slugs: tt.set}
			if got := r.OutboundSlug(e, tt.lang); got != tt.want {
				t.Errorf("OutboundSlug = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	got := Fields()
	want := []Field{"slug", "slug_en", "slug_tr"}
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	var s Set
	s.Put(FieldFor("tr"), "x")
	s.Put(Field("slug_de"), "ignored")
	if s.TR != "x" || s.Get(Field("slug_de")) != "" {
		t.Errorf("unexpected set %+v", s)
	}
}
