// Copyright (c) 2020-2023 Ozan Hacıbekiroğlu.
// Use of this source code is governed by a MIT License
// that can be found in the LICENSE file.

package metadata

import (
	"sync"

	"github.com/go-netjs/corejs/ir"
)

// MemoryStore is a concrete, in-memory Store used to exercise the translator
// and driver in tests (SPEC_FULL.md "supplemented features"). Mirrors the
// teacher's SymbolTable: a handful of maps guarded by one mutex, fork-free
// because the store is shared across the whole compilation rather than
// per-scope.
type MemoryStore struct {
	mu sync.Mutex

	methods      map[ir.MemberRef]LookupResult
	constructors map[ir.MemberRef]LookupResult
	fields       map[ir.MemberRef]FieldInfo

	classes       map[ir.Entity]ClassInfo
	staticCtors   map[ir.Entity]ir.Address
	customTypes   map[ir.Entity]CustomTypeInfo
	interfaces    map[ir.Entity]bool
	methodsByType map[ir.Entity][]ir.MemberRef
	proxied       map[ir.Entity]map[string]ir.MemberRef // iface -> method -> proxy
	recordCtors   map[ir.Entity]ir.MemberRef

	compilingMethods     []ir.MemberRef
	compilingCtors       []ir.MemberRef
	compilingStaticCtors []ir.MemberRef
	compilingImpls       []ir.MemberRef
	entryPoint           *ir.MemberRef

	diagnostics []Diagnostic

	macros      map[string]Macro
	generators  map[ir.Entity]Generator
	localMacros bool
}

// NewMemoryStore returns an empty store; use the Define*, Enqueue* and
// Register* helpers to seed it before handing it to the driver.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		methods:       make(map[ir.MemberRef]LookupResult),
		constructors:  make(map[ir.MemberRef]LookupResult),
		fields:        make(map[ir.MemberRef]FieldInfo),
		classes:       make(map[ir.Entity]ClassInfo),
		staticCtors:   make(map[ir.Entity]ir.Address),
		customTypes:   make(map[ir.Entity]CustomTypeInfo),
		interfaces:    make(map[ir.Entity]bool),
		methodsByType: make(map[ir.Entity][]ir.MemberRef),
		proxied:       make(map[ir.Entity]map[string]ir.MemberRef),
		recordCtors:   make(map[ir.Entity]ir.MemberRef),
		macros:        make(map[string]Macro),
		generators:    make(map[ir.Entity]Generator),
	}
}

// Seeding helpers; tests call these directly rather than through the Store
// interface, matching the teacher's "Define" vs "Resolve" split in
// symbol_table.go.

func (s *MemoryStore) DefineMethod(ref ir.MemberRef, r LookupResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[ref] = r
	s.methodsByType[ref.Type] = append(s.methodsByType[ref.Type], ref)
}

func (s *MemoryStore) DefineConstructor(ref ir.MemberRef, r LookupResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constructors[ref] = r
}

func (s *MemoryStore) DefineField(ref ir.MemberRef, f FieldInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[ref] = f
}

func (s *MemoryStore) DefineClass(t ir.Entity, c ClassInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[t] = c
	if c.HasCctor {
		s.staticCtors[t] = c.Addr
	}
}

func (s *MemoryStore) DefineCustomType(t ir.Entity, c CustomTypeInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customTypes[t] = c
}

func (s *MemoryStore) DefineInterface(t ir.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interfaces[t] = true
}

func (s *MemoryStore) DefineProxied(t, iface ir.Entity, method string, proxy ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.proxied[t]
	if !ok {
		m = make(map[string]ir.MemberRef)
		s.proxied[t] = m
	}
	m[iface.ID+"."+method] = proxy
}

func (s *MemoryStore) DefineRecordConstructor(t ir.Entity, ref ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordCtors[t] = ref
}

func (s *MemoryStore) SetEntryPoint(ref ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryPoint = &ref
}

func (s *MemoryStore) EnqueueMethod(ref ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compilingMethods = append(s.compilingMethods, ref)
}

func (s *MemoryStore) EnqueueConstructor(ref ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compilingCtors = append(s.compilingCtors, ref)
}

func (s *MemoryStore) EnqueueStaticConstructor(ref ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compilingStaticCtors = append(s.compilingStaticCtors, ref)
}

func (s *MemoryStore) EnqueueImplementation(ref ir.MemberRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compilingImpls = append(s.compilingImpls, ref)
}

func (s *MemoryStore) RegisterMacro(typeTag string, m Macro) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.macros[typeTag] = m
}

func (s *MemoryStore) RegisterGenerator(t ir.Entity, g Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generators[t] = g
}

// Store interface implementation.

func (s *MemoryStore) LookupMethodInfo(ref ir.MemberRef) LookupResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.methods[ref]; ok {
		return r
	}
	if c, ok := s.customTypes[ref.Type]; ok {
		return CustomTypeMember{Info: c}
	}
	return LookupMemberError{Err: Diagnostic{Kind: MemberNotFound, Member: ref, Message: "method not found"}}
}

func (s *MemoryStore) LookupConstructorInfo(ref ir.MemberRef) LookupResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.constructors[ref]; ok {
		return r
	}
	return LookupMemberError{Err: Diagnostic{Kind: MemberNotFound, Member: ref, Message: "constructor not found"}}
}

func (s *MemoryStore) LookupFieldInfo(ref ir.MemberRef) (FieldInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[ref]
	return f, ok
}

func (s *MemoryStore) TryLookupClassInfo(t ir.Entity) (ClassInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.classes[t]
	return c, ok
}

func (s *MemoryStore) TryLookupStaticConstructorAddress(t ir.Entity) (ir.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.staticCtors[t]
	return a, ok
}

func (s *MemoryStore) TryLookupClassAddressOrCustomType(t ir.Entity) (ir.Address, CustomTypeInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.classes[t]; ok {
		return c.Addr, nil, true
	}
	if c, ok := s.customTypes[t]; ok {
		return ir.Address{}, c, true
	}
	return ir.Address{}, nil, false
}

func (s *MemoryStore) GetCustomType(t ir.Entity) (CustomTypeInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customTypes[t]
	return c, ok
}

func (s *MemoryStore) GetMethods(t ir.Entity) []ir.MemberRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ir.MemberRef(nil), s.methodsByType[t]...)
}

func (s *MemoryStore) FindProxied(t, iface ir.Entity, method string) (ir.MemberRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.proxied[t]
	if !ok {
		return ir.MemberRef{}, false
	}
	ref, ok := m[iface.ID+"."+method]
	return ref, ok
}

func (s *MemoryStore) HasType(t ir.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.classes[t]
	if !ok {
		_, ok = s.customTypes[t]
	}
	return ok
}

func (s *MemoryStore) IsInterface(t ir.Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interfaces[t]
}

func (s *MemoryStore) MethodExistsInMetadata(ref ir.MemberRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.methods[ref]
	return ok
}

func (s *MemoryStore) ConstructorExistsInMetadata(ref ir.MemberRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.constructors[ref]
	return ok
}

func (s *MemoryStore) TryGetRecordConstructor(t ir.Entity) (ir.MemberRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.recordCtors[t]
	return ref, ok
}

func (s *MemoryStore) CompilingMethods() []ir.MemberRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.compilingMethods
	s.compilingMethods = nil
	return out
}

func (s *MemoryStore) GetCompilingConstructors() []ir.MemberRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.compilingCtors
	s.compilingCtors = nil
	return out
}

func (s *MemoryStore) GetCompilingStaticConstructors() []ir.MemberRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.compilingStaticCtors
	s.compilingStaticCtors = nil
	return out
}

func (s *MemoryStore) GetCompilingImplementations() []ir.MemberRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.compilingImpls
	s.compilingImpls = nil
	return out
}

func (s *MemoryStore) EntryPoint() (ir.MemberRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryPoint == nil {
		return ir.MemberRef{}, false
	}
	return *s.entryPoint, true
}

// infoFor recovers the MemberInfo (kind, formal params, bound this) that was
// attached when ref was first enqueued as Compiling, so re-recording it as
// Compiled never loses its dispatch kind. Falls back to a bare MemberInfo
// (Kind == nil) only for a ref the store never saw before, which callers
// should treat as a programming error rather than a legitimate member.
func infoFor(existing LookupResult, ref ir.MemberRef) MemberInfo {
	switch r := existing.(type) {
	case Compiling:
		return r.Info
	case Compiled:
		return r.Info
	default:
		return MemberInfo{Ref: ref}
	}
}

func (s *MemoryStore) AddCompiledMethod(ref ir.MemberRef, opts OptimizationRecord, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[ref] = Compiled{Info: infoFor(s.methods[ref], ref), Opts: opts, Body: body}
}

func (s *MemoryStore) AddCompiledConstructor(ref ir.MemberRef, opts OptimizationRecord, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constructors[ref] = Compiled{Info: infoFor(s.constructors[ref], ref), Opts: opts, Body: body}
}

func (s *MemoryStore) AddCompiledImplementation(ref ir.MemberRef, opts OptimizationRecord, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[ref] = Compiled{Info: infoFor(s.methods[ref], ref), Opts: opts, Body: body}
}

func (s *MemoryStore) AddCompiledStaticConstructor(ref ir.MemberRef, opts OptimizationRecord, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[ref] = Compiled{Info: infoFor(s.methods[ref], ref), Opts: opts, Body: body}
}

// DemoteToNotCompiledInline rewrites ref's kind in place, preserving its
// Params/This (spec.md §4.7). It only ever downgrades an Inline entry still
// holding its original ir.Expr body; it is a no-op if ref is unknown.
func (s *MemoryStore) DemoteToNotCompiledInline(ref ir.MemberRef, isCtor bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.methods
	if isCtor {
		table = s.constructors
	}
	existing, ok := table[ref]
	if !ok {
		return
	}
	info := infoFor(existing, ref)
	info.Kind = NotCompiledInline{}
	switch r := existing.(type) {
	case Compiled:
		table[ref] = Compiled{Info: info, Opts: r.Opts, Body: r.Body}
	case Compiling:
		table[ref] = Compiling{Info: info, Body: r.Body}
	}
}

func (s *MemoryStore) FailedCompiledMethod(ref ir.MemberRef, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[ref] = LookupMemberError{Err: err}
}

func (s *MemoryStore) FailedCompiledConstructor(ref ir.MemberRef, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.constructors[ref] = LookupMemberError{Err: err}
}

func (s *MemoryStore) AddError(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Warning = false
	s.diagnostics = append(s.diagnostics, d)
}

func (s *MemoryStore) AddWarning(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Warning = true
	s.diagnostics = append(s.diagnostics, d)
}

func (s *MemoryStore) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Diagnostic(nil), s.diagnostics...)
}

func (s *MemoryStore) GetMacroInstance(kind MacroKind) (Macro, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.macros[kind.Type]
	return m, ok
}

func (s *MemoryStore) GetGeneratorInstance(t ir.Entity) (Generator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.generators[t]
	return g, ok
}

// CloseMacros is the driver's end-of-queue hook for deferred macro work.
// MemoryStore holds no pending set because it expands macros synchronously,
// so this runs no macro pass and only returns every diagnostic recorded so
// far, for callers that want a final report (spec.md §4.5 "CloseMacros").
func (s *MemoryStore) CloseMacros() []Diagnostic {
	return s.Diagnostics()
}

func (s *MemoryStore) UseLocalMacros(use bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localMacros = use
}
