package main

import "sort"

// DependencyGraph holds forward edges (a cell to the cells its formula
// reads) and reverse edges (a cell to the cells that read it). The two maps
// are exact inverses at all times. Node ids are qualified keys: "A1" on the
// owning sheet, "Sheet2.A1" when the reference crosses sheets.
type DependencyGraph struct {
	dependsOn  map[string]map[string]struct{}
	dependents map[string]map[string]struct{}
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		dependsOn:  map[string]map[string]struct{}{},
		dependents: map[string]map[string]struct{}{},
	}
}

// ExtractReferences returns the deduplicated reference set of a formula.
// Range references contribute both endpoint tokens.
func ExtractReferences(formula string) []string {
	seen := map[string]struct{}{}
	refs := make([]string, 0, 4)

	scanRefs(formula, func(ref Ref) (string, bool) {
		key := ref.QualifiedKey()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			refs = append(refs, key)
		}
		return "", false
	})

	return refs
}

// SetDependencies replaces the forward edges of cell and keeps the reverse
// map in sync. An empty dependency list removes the node from the forward map.
func (g *DependencyGraph) SetDependencies(cell string, deps []string) {
	for old := range g.dependsOn[cell] {
		delete(g.dependents[old], cell)
		if len(g.dependents[old]) == 0 {
			delete(g.dependents, old)
		}
	}
	delete(g.dependsOn, cell)

	if len(deps) == 0 {
		return
	}

	forward := make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		forward[dep] = struct{}{}
		if g.dependents[dep] == nil {
			g.dependents[dep] = map[string]struct{}{}
		}
		g.dependents[dep][cell] = struct{}{}
	}
	g.dependsOn[cell] = forward
}

// Remove drops every edge touching cell in either direction.
func (g *DependencyGraph) Remove(cell string) {
	g.SetDependencies(cell, nil)
}

// Dependents returns the cells whose formulas read cell, sorted for
// deterministic propagation order.
func (g *DependencyGraph) Dependents(cell string) []string {
	return sortedKeys(g.dependents[cell])
}

// DependsOn returns the cells the formula of cell reads, sorted.
func (g *DependencyGraph) DependsOn(cell string) []string {
	return sortedKeys(g.dependsOn[cell])
}

// Rebuild discards both maps and re-derives them from the current formula
// text of every cell. Used after bulk structural edits, when many formula
// texts changed at once and incremental patching would chase its own tail.
func (g *DependencyGraph) Rebuild(formulas map[string]string) {
	g.dependsOn = map[string]map[string]struct{}{}
	g.dependents = map[string]map[string]struct{}{}

	for cell, formula := range formulas {
		g.SetDependencies(cell, ExtractReferences(formula))
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
