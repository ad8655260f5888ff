// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"bytes"
	"go/token"
	"slices"
	"strings"
)

// Edit replaces the source range [Pos, End) with Text.
type Edit struct {
	Pos, End token.Pos
	Text     string
}

// Diff returns the edits turning src, the source text of the tree orig, into the source text of root.
//
// Nodes shared with orig or carrying the span of an original node keep their source text, including
// comments and layout. Only replaced, inserted and removed nodes are printed. Inserted list elements
// are placed after the nearest preceding original sibling. When no finer edit is possible, the
// whole source is replaced by the printed tree. The edits are sorted and do not overlap.
func Diff(file *token.File, src []byte, orig, root *Node) []Edit {
	if orig == root {
		return nil
	}

	d := newDiffer(file, src, orig)
	if !d.node(orig, root) {
		text := d.render(root, "", true)

		return []Edit{{Pos: file.Pos(0), End: file.Pos(len(src)), Text: text}}
	}

	slices.SortStableFunc(d.edits, func(a, b Edit) int { return int(a.Pos) - int(b.Pos) })

	return d.edits
}

// Apply returns src with the sorted, non-overlapping edits applied.
func Apply(file *token.File, src []byte, edits []Edit) []byte {
	var buf bytes.Buffer

	last := 0
	for _, e := range edits {
		pos, end := int(e.Pos)-file.Base(), int(e.End)-file.Base()
		buf.Write(src[last:pos])
		buf.WriteString(e.Text)
		last = end
	}

	buf.Write(src[last:])

	return buf.Bytes()
}

// origKey identifies an original node by its span.
type origKey struct {
	kind     Kind
	pos, end token.Pos
	text     string
}

func keyOf(n *Node) origKey { return origKey{n.kind, n.pos, n.end, n.text} }

type differ struct {
	file  *token.File
	src   []byte
	orig  map[origKey]*Node
	edits []Edit
}

func newDiffer(file *token.File, src []byte, orig *Node) *differ {
	d := &differ{file: file, src: src, orig: make(map[origKey]*Node)}

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}

		if n.pos.IsValid() {
			d.orig[keyOf(n)] = n
		}

		for _, c := range n.children {
			walk(c)
		}
	}
	walk(orig)

	return d
}

func (d *differ) off(pos token.Pos) int { return int(pos) - d.file.Base() }

func (d *differ) pos(off int) token.Pos { return token.Pos(d.file.Base() + off) }

func (d *differ) add(pos, end int, text string) {
	d.edits = append(d.edits, Edit{Pos: d.pos(pos), End: d.pos(end), Text: text})
}

// node records the edits turning o into n, reporting false when n has to be printed instead.
func (d *differ) node(o, n *Node) bool {
	switch {
	case o == n:
		return true

	case !n.pos.IsValid() || o.pos != n.pos || o.end != n.end,
		o.kind != n.kind || o.text != n.text || !slices.Equal(o.comments, n.comments):
		return false
	}

	if !slices.Equal(o.modifiers, n.modifiers) && !d.modifiers(o, n) {
		return false
	}

	for i := range o.kind.Slots() {
		if !d.slot(o.Slot(i), n.Slot(i)) {
			return false
		}
	}

	return d.list(o, n)
}

// modifiers inserts modifiers added in one place.
func (d *differ) modifiers(o, n *Node) bool {
	om, nm := o.modifiers, n.modifiers

	added := len(nm) - len(om)
	if added <= 0 {
		return false
	}

	k := 0
	for k < len(om) && om[k] == nm[k] {
		k++
	}

	if !slices.Equal(om[k:], nm[k+added:]) {
		return false
	}

	start, end := d.off(o.pos), d.off(o.end)

	cursor := start
	for _, m := range om[:k] {
		i := strings.Index(string(d.src[cursor:end]), m)
		if i < 0 {
			return false
		}

		cursor += i + len(m)
	}

	text := strings.Join(nm[k:k+added], " ")

	switch {
	case k < len(om):
		i := strings.Index(string(d.src[cursor:end]), om[k])
		if i < 0 {
			return false
		}

		d.add(cursor+i, cursor+i, text+" ")

	case k == 0:
		d.add(start, start, text+" ")

	default:
		d.add(cursor, cursor, " "+text)
	}

	return true
}

// slot records the edits for a fixed child position.
func (d *differ) slot(o, n *Node) bool {
	switch {
	case o == n:
		return true

	case o == nil || n == nil || !o.pos.IsValid():
		return false
	}

	mark := len(d.edits)
	if d.node(o, n) {
		return true
	}

	d.edits = d.edits[:mark]

	return d.replace(o, n)
}

// replace prints n in place of the original node o.
func (d *differ) replace(o, n *Node) bool {
	start, end := d.off(o.pos), d.off(o.end)
	if start == end {
		return false
	}

	text := d.render(n.WithComments(), d.indent(start), false)
	d.add(start, end, text)

	return true
}

// lineList reports whether the list part of nodes of kind k holds members or statements, one per line.
func lineList(k Kind) bool {
	switch k {
	case CompilationUnit, NamespaceDeclaration, FileScopedNamespace,
		ClassDeclaration, StructDeclaration, InterfaceDeclaration, Block:
		return true

	default:
		return false
	}
}

// commaList reports whether the list part of nodes of kind k is separated by commas.
func commaList(k Kind) bool {
	switch k {
	case BaseList, ArgumentList, TypeParameterList, ParameterList,
		ObjectInitializer, CollectionInitializer, GenericName:
		return true

	default:
		return false
	}
}

// insertion is a run of new list elements following the original element after.
type insertion struct {
	after *Node
	nodes []*Node
}

func (d *differ) list(o, n *Node) bool {
	ol, nl := o.List(), n.List()

	var (
		pairs      [][2]*Node
		removed    []*Node
		insertions []insertion
		prev       *Node
	)

	j := 0
	for _, e := range nl {
		k := -1
		if e.pos.IsValid() {
			for i := j; i < len(ol); i++ {
				if ol[i] == e || keyOf(ol[i]) == keyOf(e) {
					k = i

					break
				}
			}
		}

		if k < 0 {
			if m := len(insertions); m > 0 && insertions[m-1].after == prev {
				insertions[m-1].nodes = append(insertions[m-1].nodes, e)
			} else {
				insertions = append(insertions, insertion{after: prev, nodes: []*Node{e}})
			}

			continue
		}

		removed = append(removed, ol[j:k]...)
		pairs = append(pairs, [2]*Node{ol[k], e})
		prev, j = ol[k], k+1
	}

	removed = append(removed, ol[j:]...)

	if (len(removed) > 0 || len(insertions) > 0) && !lineList(o.kind) && !commaList(o.kind) {
		return false
	}

	for _, p := range pairs {
		mark := len(d.edits)
		if d.node(p[0], p[1]) {
			continue
		}

		d.edits = d.edits[:mark]
		if !p[0].pos.IsValid() || !d.replace(p[0], p[1]) {
			return false
		}
	}

	if commaList(o.kind) {
		return d.appendComma(o, ol, removed, insertions)
	}

	for _, r := range removed {
		if !d.remove(r, pairs) {
			return false
		}
	}

	for _, ins := range insertions {
		if !d.insert(o, ol, ins) {
			return false
		}
	}

	return true
}

// appendComma supports appending to comma separated lists.
func (d *differ) appendComma(o *Node, ol, removed []*Node, insertions []insertion) bool {
	switch {
	case len(removed) > 0 || len(insertions) > 1:
		return false

	case len(insertions) == 0:
		return true
	}

	ins := insertions[0]

	texts := make([]string, 0, len(ins.nodes))
	for _, n := range ins.nodes {
		texts = append(texts, d.render(n, "", false))
	}

	text := strings.Join(texts, ", ")

	switch {
	case len(ol) == 0 && o.kind == BaseList && o.pos.IsValid() && o.pos == o.end:
		d.add(d.off(o.pos), d.off(o.pos), " : "+text)

	case len(ol) > 0 && ins.after == ol[len(ol)-1] && ins.after.pos.IsValid():
		end := d.off(ins.after.end)
		d.add(end, end, ", "+text)

	default:
		return false
	}

	return true
}

// remove deletes an original list element, together with its line when nothing else is on it.
func (d *differ) remove(r *Node, kept [][2]*Node) bool {
	if !r.pos.IsValid() {
		return false
	}

	for _, p := range kept {
		if p[0].pos == r.pos && p[0].end == r.end {
			return false
		}
	}

	start, end := d.off(r.pos), d.off(r.end)
	ls, le := d.lineStart(start), d.lineEnd(end)

	if isBlank(d.src[ls:start]) && (isBlank(d.src[end:le]) || isComment(d.src[end:le])) {
		start, end = d.commentStart(ls, len(r.comments)), min(le+1, len(d.src))
	}

	d.add(start, end, "")

	return true
}

// insert places new elements of a member or statement list after their preceding original sibling.
func (d *differ) insert(o *Node, ol []*Node, ins insertion) bool {
	sep := "\n\n"
	if o.kind == Block {
		sep = "\n"
	}

	switch {
	case ins.after != nil:
		if !ins.after.pos.IsValid() {
			return false
		}

		start, end := d.off(ins.after.pos), d.off(ins.after.end)
		if le := d.lineEnd(end); isBlank(d.src[end:le]) || isComment(d.src[end:le]) {
			end = le
		}

		d.add(end, end, sep+d.renderList(ins.nodes, d.indent(start), sep))

	case len(ol) > 0:
		first := ol[0]
		if !first.pos.IsValid() {
			return false
		}

		start := d.off(first.pos)
		at := d.commentStart(d.lineStart(start), len(first.comments))

		d.add(at, at, d.renderList(ins.nodes, d.indent(start), sep)+sep)

	case o.kind == CompilationUnit:
		end := d.off(o.end)

		text := d.renderList(ins.nodes, "", sep) + "\n"
		if end > 0 && d.src[end-1] != '\n' {
			text = "\n" + text
		}

		d.add(end, end, text)

	default:
		// Empty braced list, the closing brace on a line of its own.
		start, end := d.off(o.pos), d.off(o.end)

		brace := bytes.LastIndexByte(d.src[start:end], '}')
		if brace < 0 {
			return false
		}

		brace += start
		ls := d.lineStart(brace)

		if !isBlank(d.src[ls:brace]) {
			return false
		}

		indent := string(d.src[ls:brace]) + indentation
		d.add(ls, ls, d.renderList(ins.nodes, indent, sep)+"\n")
	}

	return true
}

func (d *differ) renderList(nodes []*Node, indent, sep string) string {
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, d.render(n, indent, true))
	}

	return strings.Join(texts, sep)
}

// render prints n with the given base indentation, reusing the source text of original nodes.
func (d *differ) render(n *Node, indent string, bol bool) string {
	p := printer{prefix: indent, bol: bol, source: d.source}
	p.node(n)

	if n.kind == CompilationUnit {
		return p.buf.String()
	}

	return strings.TrimSuffix(p.buf.String(), "\n")
}

// source returns the source text of the original node corresponding to n, with the edits for n applied.
func (d *differ) source(n *Node) (string, bool) {
	if !n.pos.IsValid() {
		return "", false
	}

	o, ok := d.orig[keyOf(n)]
	if !ok {
		return "", false
	}

	sub := differ{file: d.file, src: d.src, orig: d.orig}
	if !sub.node(o, n) {
		return "", false
	}

	slices.SortStableFunc(sub.edits, func(a, b Edit) int { return int(a.Pos) - int(b.Pos) })

	start, end := d.off(o.pos), d.off(o.end)

	var buf strings.Builder

	last := start
	for _, e := range sub.edits {
		buf.Write(d.src[last:d.off(e.Pos)])
		buf.WriteString(e.Text)
		last = d.off(e.End)
	}

	buf.Write(d.src[last:end])

	return buf.String(), true
}

func (d *differ) lineStart(off int) int {
	return bytes.LastIndexByte(d.src[:off], '\n') + 1
}

func (d *differ) lineEnd(off int) int {
	if i := bytes.IndexByte(d.src[off:], '\n'); i >= 0 {
		return off + i
	}

	return len(d.src)
}

// indent returns the leading white space of the line containing off.
func (d *differ) indent(off int) string {
	ls := d.lineStart(off)

	i := ls
	for i < off && (d.src[i] == ' ' || d.src[i] == '\t') {
		i++
	}

	return string(d.src[ls:i])
}

// commentStart returns the start of up to n comment lines preceding the line starting at ls.
func (d *differ) commentStart(ls, n int) int {
	for ; n > 0 && ls > 0; n-- {
		prev := d.lineStart(ls - 1)

		line := bytes.TrimSpace(d.src[prev : ls-1])
		if !bytes.HasPrefix(line, []byte("//")) && !bytes.HasPrefix(line, []byte("#")) {
			break
		}

		ls = prev
	}

	return ls
}

func isBlank(b []byte) bool { return len(bytes.TrimSpace(b)) == 0 }

func isComment(b []byte) bool {
	b = bytes.TrimSpace(b)

	return bytes.HasPrefix(b, []byte("//")) || bytes.HasPrefix(b, []byte("/*")) && bytes.HasSuffix(b, []byte("*/"))
}
