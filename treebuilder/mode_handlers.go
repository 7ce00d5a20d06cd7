package treebuilder

import (
	"strings"

	"github.com/hvmlgo/hvmlparse/dom"
	htmlerrors "github.com/hvmlgo/hvmlparse/errors"
	"github.com/hvmlgo/hvmlparse/internal/constants"
	"github.com/hvmlgo/hvmlparse/tokenizer"
)

// These handlers are a growing implementation of the HTML5 tree construction
// insertion modes. They focus on correctness and non-panicking behavior.

func (tb *TreeBuilder) processInitial(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		tb.document.QuirksMode = dom.Quirks
		tb.mode = BeforeHTML
		return true
	case tokenizer.Comment:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.DOCTYPE:
		tb.document.Doctype = dom.NewDocumentType(tok.Name, ptrToString(tok.PublicID), ptrToString(tok.SystemID))
		tb.setQuirksModeFromDoctype(tok.Name, tok.PublicID, tok.SystemID, tok.ForceQuirks)
		tb.mode = BeforeHTML
		return false
	default:
		tb.document.QuirksMode = dom.Quirks
		tb.mode = BeforeHTML
		return true
	}
}

func (tb *TreeBuilder) processBeforeHTML(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		// Strip leading whitespace so that implicit root creation behaves like the spec.
		tok.Data = strings.TrimLeft(tok.Data, "\t\n\f\r ")
	case tokenizer.Comment:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.StartTag:
		if tok.Name == "html" {
			tb.insertElement("html", tok.Attrs)
			tb.mode = BeforeHead
			return false
		}
	case tokenizer.EndTag:
		// "head", "body", "html", "br" trigger implicit root creation and reprocess.
		if tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br" {
			tb.insertElement("html", nil)
			tb.mode = BeforeHead
			return true
		}
		return false
	case tokenizer.EOF:
		tb.insertElement("html", nil)
		tb.mode = BeforeHead
		return true
	}

	// Create implicit <html> element.
	tb.insertElement("html", nil)
	tb.mode = BeforeHead
	return true
}

func (tb *TreeBuilder) processBeforeHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			// Duplicate <html>: merge attributes into the existing root.
			if len(tb.openElements) > 0 && tb.openElements[0].TagName == "html" {
				tb.addMissingAttributes(tb.openElements[0], tok.Attrs)
			}
			return false
		case "head":
			tb.headElement = tb.insertElement("head", tok.Attrs)
			tb.mode = InHead
			return false
		}
	case tokenizer.EndTag:
		// Ignore most end tags here.
		return false
	}

	// Implicit <head>.
	tb.headElement = tb.insertElement("head", nil)
	tb.mode = InHead
	return true
}

func (tb *TreeBuilder) processInHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			// Delegate to InBody rules for attribute merge behavior.
			tb.mode = InBody
			return true
		case "title", "textarea":
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.tokenizer.SetLastStartTag(tok.Name)
			tb.tokenizer.SetState(tokenizer.RCDATAState)
			return false
		case "script", "style", "xmp", "iframe", "noembed", "noframes":
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.tokenizer.SetLastStartTag(tok.Name)
			if tok.Name == "script" {
				tb.tokenizer.SetState(tokenizer.ScriptDataState)
			} else {
				tb.tokenizer.SetState(tokenizer.RAWTEXTState)
			}
			return false
		case "noscript":
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InHeadNoscript
			return false
		case "base", "basefont", "bgsound", "link", "meta":
			// Void-ish head elements; do not stay on stack.
			tb.insertElement(tok.Name, tok.Attrs)
			tb.popCurrent()
			return false
		case "template":
			tb.insertElement("template", tok.Attrs)
			tb.pushActiveFormattingMarker()
			tb.pushTemplateMode(InTemplate)
			tb.mode = InTemplate
			return false
		case "head":
			// Ignore additional heads.
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head":
			tb.popUntil("head")
			tb.mode = AfterHead
			return false
		case "template":
			// If no template element is open, ignore.
			if !tb.elementInStack("template") {
				tb.emitError(htmlerrors.TemplateCloseWithoutOpen)
				return false
			}
			tb.popUntil("template")
			tb.clearActiveFormattingUpToMarker()
			tb.popTemplateMode()
			tb.resetInsertionModeAppropriately()
			return false
		}
	case tokenizer.EOF:
		tb.popUntil("head")
		tb.mode = AfterHead
		return true
	}

	// Anything else: close head and reprocess in after head.
	tb.popUntil("head")
	tb.mode = AfterHead
	return true
}

func (tb *TreeBuilder) processInHeadNoscript(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInHead(tok)
		}
		tb.popUntil("noscript")
		tb.mode = InHead
		return true
	case tokenizer.Comment:
		return tb.processInHead(tok)
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			tb.mode = InBody
			return true
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return tb.processInHead(tok)
		case "head", "noscript":
			return false
		default:
			tb.popUntil("noscript")
			tb.mode = InHead
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "noscript":
			tb.popUntil("noscript")
			tb.mode = InHead
			return false
		case "br":
			tb.popUntil("noscript")
			tb.mode = InHead
			return true
		default:
			return false
		}
	case tokenizer.EOF:
		tb.popUntil("noscript")
		tb.mode = InHead
		return true
	default:
		return false
	}
}

func (tb *TreeBuilder) processAfterHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			tb.mode = InBody
			return true
		case "body":
			tb.insertElement("body", tok.Attrs)
			tb.framesetOK = false
			tb.mode = InBody
			return false
		case "frameset":
			tb.insertElement("frameset", tok.Attrs)
			tb.mode = InFrameset
			return false
		case "head":
			// Parse error; ignore token.
			return false
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = InBody
			return true
		}
	case tokenizer.EOF:
		tb.insertElement("body", nil)
		tb.mode = InBody
		return true
	}

	// Implicit <body>.
	tb.insertElement("body", nil)
	tb.framesetOK = false
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processText(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		tb.insertText(tok.Data)
		return false
	case tokenizer.EndTag:
		tb.popUntil(tok.Name)
		tb.mode = tb.originalMode
		tb.tokenizer.SetState(tokenizer.DataState)
		return false
	case tokenizer.EOF:
		tb.mode = tb.originalMode
		tb.tokenizer.SetState(tokenizer.DataState)
		return true
	default:
		return false
	}
}

// closeBeforeBlockElements lists the block-level start tags that, per the
// HTML5 in-body algorithm, first close an open <p> in button scope.
var closeBeforeBlockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"center": true, "details": true, "dialog": true, "dir": true, "div": true,
	"dl": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "header": true, "hgroup": true, "main": true, "menu": true,
	"nav": true, "ol": true, "p": true, "search": true, "section": true,
	"summary": true, "ul": true,
}

// framesetOKBreakers are start tags that, per the in-body algorithm, clear
// frameset-ok the moment they're seen (independent of their other effects).
var framesetOKBreakers = map[string]bool{
	"pre": true, "listing": true, "form": true, "li": true, "dd": true,
	"dt": true, "button": true, "applet": true, "object": true,
	"marquee": true, "xmp": true, "iframe": true, "noembed": true,
	"embed": true, "keygen": true, "wbr": true, "hr": true,
}

func (tb *TreeBuilder) processInBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		tb.reconstructActiveFormattingElements()
		if strings.Contains(tok.Data, "\x00") {
			tb.emitError(htmlerrors.NullCharacterInTree)
		}
		if tok.Data != "" {
			if !isAllWhitespace(tok.Data) {
				tb.framesetOK = false
			}
			tb.insertText(tok.Data)
		}
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.DOCTYPE:
		tb.emitError(htmlerrors.DoctypeInWrongMode)
		return false
	case tokenizer.StartTag:
		// "image" is a historical misspelling that browsers treat as "img".
		if tok.Name == "image" {
			tok.Name = "img"
			tok.TagID = constants.TagIDFor("img")
		}
		switch tok.Name {
		case "html":
			if len(tb.openElements) > 0 && tb.openElements[0].TagName == "html" {
				tb.addMissingAttributes(tb.openElements[0], tok.Attrs)
			}
			return false
		case "base", "basefont", "bgsound", "link", "meta", "noframes":
			// Per spec §13.2.6.4.7: process using the rules for "in head".
			// These are void elements - insert and immediately pop.
			tb.insertElement(tok.Name, tok.Attrs)
			tb.popCurrent()
			return false
		case "body":
			if tb.hasSecondBodyOrFrameset() {
				tb.emitError(htmlerrors.BodyOrFramesetInWrongMode)
			}
			// If a body element already exists, merge attrs.
			if body := tb.document.Body(); body != nil {
				tb.addMissingAttributes(body, tok.Attrs)
				tb.framesetOK = false
				return false
			}
			tb.insertElement("body", tok.Attrs)
			tb.framesetOK = false
			return false
		case "frameset":
			tb.emitError(htmlerrors.BodyOrFramesetInWrongMode)
			return false
		case "svg":
			tb.reconstructActiveFormattingElements()
			tb.insertForeignElement("svg", dom.NamespaceSVG, prepareForeignAttributes(dom.NamespaceSVG, tok.Attrs), tok.SelfClosing)
			tb.framesetOK = false
			return false
		case "math":
			tb.reconstructActiveFormattingElements()
			tb.insertForeignElement("math", dom.NamespaceMathML, prepareForeignAttributes(dom.NamespaceMathML, tok.Attrs), tok.SelfClosing)
			tb.framesetOK = false
			return false
		case "a":
			if tb.hasActiveFormattingEntry("a") {
				tb.adoptionAgency("a")
				tb.removeLastActiveFormattingByName("a")
				tb.removeLastOpenElementByName("a")
			}
			tb.reconstructActiveFormattingElements()
			node := tb.insertElement("a", tok.Attrs)
			tb.appendActiveFormattingEntry("a", tok.Attrs, node)
			tb.framesetOK = false
			return false
		case "table":
			if tb.document.QuirksMode != dom.Quirks && tb.hasPElementInButtonScope() {
				tb.closePElement()
			}
			tb.insertElement("table", tok.Attrs)
			tb.framesetOK = false
			tb.mode = InTable
			return false
		case "select":
			tb.reconstructActiveFormattingElements()
			tb.insertElement("select", tok.Attrs)
			tb.framesetOK = false
			switch tb.mode {
			case InTable, InCaption, InTableBody, InRow, InCell:
				tb.mode = InSelectInTable
			default:
				tb.mode = InSelect
			}
			return false
		case "textarea":
			// Per spec: a leading U+000A LINE FEED in textarea content is
			// ignored, but that's handled by the tokenizer's RCDATA reader.
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.framesetOK = false
			tb.tokenizer.SetLastStartTag(tok.Name)
			tb.tokenizer.SetState(tokenizer.RCDATAState)
			return false
		case "title":
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.tokenizer.SetLastStartTag(tok.Name)
			tb.tokenizer.SetState(tokenizer.RCDATAState)
			return false
		case "xmp":
			if tb.hasPElementInButtonScope() {
				tb.closePElement()
			}
			tb.reconstructActiveFormattingElements()
			tb.framesetOK = false
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.tokenizer.SetLastStartTag(tok.Name)
			tb.tokenizer.SetState(tokenizer.RAWTEXTState)
			return false
		case "iframe", "noembed":
			tb.framesetOK = false
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.tokenizer.SetLastStartTag(tok.Name)
			tb.tokenizer.SetState(tokenizer.RAWTEXTState)
			return false
		case "script", "style":
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			tb.tokenizer.SetLastStartTag(tok.Name)
			if tok.Name == "script" {
				tb.tokenizer.SetState(tokenizer.ScriptDataState)
			} else {
				tb.tokenizer.SetState(tokenizer.RAWTEXTState)
			}
			return false
		case "p":
			if tb.hasPElementInButtonScope() {
				tb.closePElement()
			}
			tb.reconstructActiveFormattingElements()
			tb.insertElement("p", tok.Attrs)
			tb.framesetOK = false
			return false
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if tb.hasPElementInButtonScope() {
				tb.closePElement()
			}
			if cur := tb.currentElement(); cur != nil && isHeadingElement(cur.TagName) {
				tb.emitError(htmlerrors.UnexpectedToken)
				tb.popCurrent()
			}
			tb.reconstructActiveFormattingElements()
			tb.insertElement(tok.Name, tok.Attrs)
			tb.framesetOK = false
			return false
		case "li":
			tb.framesetOK = false
			tb.closeListItem("li", map[string]bool{"li": true})
			tb.reconstructActiveFormattingElements()
			tb.insertElement("li", tok.Attrs)
			return false
		case "dd", "dt":
			tb.framesetOK = false
			tb.closeListItem(tok.Name, map[string]bool{"dd": true, "dt": true})
			tb.reconstructActiveFormattingElements()
			tb.insertElement(tok.Name, tok.Attrs)
			return false
		case "input":
			tb.reconstructActiveFormattingElements()
			tb.insertElement("input", tok.Attrs)
			tb.popCurrent()
			if !isHiddenInput(tok.Attrs) {
				tb.framesetOK = false
			}
			return false
		case "plaintext":
			if tb.hasPElementInButtonScope() {
				tb.closePElement()
			}
			tb.reconstructActiveFormattingElements()
			tb.insertElement("plaintext", tok.Attrs)
			tb.tokenizer.SetState(tokenizer.PLAINTEXTState)
			return false
		case "br":
			tb.reconstructActiveFormattingElements()
			tb.insertElement("br", tok.Attrs)
			tb.popCurrent()
			tb.framesetOK = false
			return false
		}

		if closeBeforeBlockElements[tok.Name] {
			if tb.hasPElementInButtonScope() {
				tb.closePElement()
			}
			tb.insertElement(tok.Name, tok.Attrs)
			return false
		}

		if framesetOKBreakers[tok.Name] {
			tb.framesetOK = false
		}

		if constants.FormattingElements[tok.Name] {
			if tok.Name == "nobr" && tb.hasElementInScope("nobr", constants.DefaultScope) {
				tb.adoptionAgency("nobr")
				tb.removeLastActiveFormattingByName("nobr")
				tb.removeLastOpenElementByName("nobr")
			}
			tb.reconstructActiveFormattingElements()
			if dup, ok := tb.findActiveFormattingDuplicate(tok.Name, tok.Attrs); ok {
				tb.removeFormattingEntry(dup)
			}
			node := tb.insertElement(tok.Name, tok.Attrs)
			tb.appendActiveFormattingEntry(tok.Name, tok.Attrs, node)
			return false
		}

		tb.reconstructActiveFormattingElements()
		el := tb.insertElement(tok.Name, tok.Attrs)
		if tok.SelfClosing || constants.VoidElements[tok.Name] {
			tb.popCurrent()
			_ = el
		}
		return false
	case tokenizer.EndTag:
		switch tok.Name {
		case "body":
			if !tb.hasElementInScope("body", constants.DefaultScope) {
				tb.emitError(htmlerrors.MissingElementInScope)
				return false
			}
			tb.mode = AfterBody
			return false
		case "html":
			if !tb.hasElementInScope("body", constants.DefaultScope) {
				tb.emitError(htmlerrors.MissingElementInScope)
				return false
			}
			tb.mode = AfterBody
			return true
		case "p":
			if !tb.hasPElementInButtonScope() {
				tb.emitError(htmlerrors.MissingElementInScope)
				tb.insertElement("p", nil)
			}
			tb.closePElement()
			return false
		case "li":
			tb.closeEndTagListItem("li", constants.ListItemScope)
			return false
		case "dd", "dt":
			tb.closeEndTagListItem(tok.Name, constants.DefinitionScope)
			return false
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if !tb.hasAnyElementInScope(headingElements, constants.DefaultScope) {
				tb.emitError(htmlerrors.MissingElementInScope)
				return false
			}
			tb.generateImpliedEndTags("")
			if cur := tb.currentElement(); cur != nil && cur.TagName != tok.Name {
				tb.emitError(htmlerrors.ElementIsNotCurrent)
			}
			for i := len(tb.openElements) - 1; i >= 0; i-- {
				if isHeadingElement(tb.openElements[i].TagName) {
					tb.openElements = tb.openElements[:i]
					break
				}
			}
			return false
		default:
			if constants.FormattingElements[tok.Name] {
				tb.adoptionAgency(tok.Name)
				return false
			}
			if !tb.anyOtherEndTag(tok.Name) {
				tb.emitError(htmlerrors.UnexpectedCloseTag)
			}
			return false
		}
	case tokenizer.EOF:
		tb.handleInBodyEOF()
		return false
	default:
		return false
	}
}

// closeListItem implements the auto-closing walk shared by <li> and
// <dd>/<dt>: pop implied end tags (except the tag being opened) and the
// matching ancestor, stopping at address/div/p or any special element that
// isn't in the matching set.
func (tb *TreeBuilder) closeListItem(tag string, matching map[string]bool) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		if node.Namespace != dom.NamespaceHTML {
			return
		}
		if matching[node.TagName] {
			tb.generateImpliedEndTags(node.TagName)
			if cur := tb.currentElement(); cur != nil && cur.TagName != node.TagName {
				tb.emitError(htmlerrors.ElementIsNotCurrent)
			}
			tb.popUntil(node.TagName)
			return
		}
		if node.TagName != "address" && node.TagName != "div" && node.TagName != "p" && constants.SpecialElements[node.TagName] {
			return
		}
	}
}

// closeEndTagListItem implements the end-tag side of li/dd/dt handling: if
// the element isn't in the given scope it's a parse error and ignored,
// otherwise implied end tags are generated and the element popped.
func (tb *TreeBuilder) closeEndTagListItem(tag string, scope map[string]bool) {
	if !tb.hasElementInScope(tag, scope) {
		tb.emitError(htmlerrors.MissingElementInScope)
		return
	}
	tb.generateImpliedEndTags(tag)
	if cur := tb.currentElement(); cur != nil && cur.TagName != tag {
		tb.emitError(htmlerrors.ElementIsNotCurrent)
	}
	tb.popUntil(tag)
}

// closePElement implements "close a p element": generate implied end tags
// except p, then pop until the p itself is gone.
func (tb *TreeBuilder) closePElement() {
	tb.generateImpliedEndTags("p")
	if cur := tb.currentElement(); cur != nil && cur.TagName != "p" {
		tb.emitError(htmlerrors.ElementIsNotCurrent)
	}
	tb.popUntil("p")
}

func (tb *TreeBuilder) hasSecondBodyOrFrameset() bool {
	return len(tb.openElements) > 1 && tb.openElements[1].TagName != "body"
}

// handleInBodyEOF implements the stack-is-conforming check from the HTML5
// in-body end-of-file algorithm: anything left open that isn't in the
// scope-closable set is a parse error, but parsing always ends cleanly.
func (tb *TreeBuilder) handleInBodyEOF() {
	for _, el := range tb.openElements {
		if el.Namespace != dom.NamespaceHTML || !constants.ThoroughlyImpliedEndTagElements[el.TagName] &&
			el.TagName != "body" && el.TagName != "html" {
			tb.emitError(htmlerrors.MissingElementInOpenStack)
			break
		}
	}
}

func (tb *TreeBuilder) processInTable(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		// Switch to "in table text" and reprocess.
		mode := tb.mode
		tb.tableTextOriginalMode = &mode
		tb.pendingTableText = tb.pendingTableText[:0]
		tb.mode = InTableText
		return true
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption":
			tb.insertElement("caption", tok.Attrs)
			tb.mode = InCaption
			return false
		case "colgroup":
			tb.insertElement("colgroup", tok.Attrs)
			tb.mode = InColumnGroup
			return false
		case "tbody", "thead", "tfoot":
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InTableBody
			return false
		case "tr":
			tb.insertElement("tbody", nil)
			tb.mode = InTableBody
			return true
		case "td", "th":
			tb.insertElement("tbody", nil)
			tb.mode = InTableBody
			return true
		case "table":
			tb.popUntil("table")
			tb.mode = InBody
			return true
		case "select":
			tb.insertElement("select", tok.Attrs)
			tb.mode = InSelectInTable
			return false
		case "template":
			tb.insertElement("template", tok.Attrs)
			tb.pushActiveFormattingMarker()
			tb.pushTemplateMode(InTemplate)
			tb.mode = InTemplate
			return false
		}
		// Default: any other start tag switches the mode to InBody and is
		// reprocessed there; it is not foster-parented.
		tb.mode = InBody
		return true
	case tokenizer.EndTag:
		switch tok.Name {
		case "table":
			tb.popUntil("table")
			tb.mode = InBody
			return false
		case "body", "caption", "col", "colgroup", "html", "tbody", "tfoot", "thead", "tr", "td", "th":
			return false
		}
	case tokenizer.EOF:
		return false
	}
	return false
}

func (tb *TreeBuilder) processInTableText(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		tb.pendingTableText = append(tb.pendingTableText, tok.Data)
		return false
	default:
		// Flush pending table text.
		for _, s := range tb.pendingTableText {
			if isAllWhitespace(s) {
				tb.insertText(s)
			} else {
				tb.emitError(htmlerrors.CharacterInTable)
				tb.withFosterParenting(func() bool {
					tb.insertText(s)
					return false
				})
			}
		}
		tb.pendingTableText = tb.pendingTableText[:0]
		if tb.tableTextOriginalMode != nil {
			tb.mode = *tb.tableTextOriginalMode
			tb.tableTextOriginalMode = nil
		} else {
			tb.mode = InTable
		}
		return true
	}
}

func (tb *TreeBuilder) processInCaption(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.EndTag:
		if tok.Name == "caption" {
			tb.popUntil("caption")
			tb.mode = InTable
			return false
		}
		if tok.Name == "table" {
			tb.popUntil("caption")
			tb.mode = InTable
			return true
		}
	case tokenizer.StartTag:
		if tok.Name == "table" {
			tb.popUntil("caption")
			tb.mode = InTable
			return true
		}
	}
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processInColumnGroup(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "col":
			tb.insertElement("col", tok.Attrs)
			tb.popCurrent()
			return false
		case "template":
			tb.insertElement("template", tok.Attrs)
			tb.pushActiveFormattingMarker()
			tb.pushTemplateMode(InTemplate)
			tb.mode = InTemplate
			return false
		}
	case tokenizer.EndTag:
		if tok.Name == "colgroup" {
			tb.popUntil("colgroup")
			tb.mode = InTable
			return false
		}
	case tokenizer.EOF:
		return false
	}

	// Close colgroup and reprocess in table.
	tb.popUntil("colgroup")
	tb.mode = InTable
	return true
}

func (tb *TreeBuilder) processInTableBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "tr":
			tb.insertElement("tr", tok.Attrs)
			tb.mode = InRow
			return false
		case "td", "th":
			tb.insertElement("tr", nil)
			tb.mode = InRow
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tbody", "thead", "tfoot":
			tb.popUntil(tok.Name)
			tb.mode = InTable
			return false
		case "table":
			tb.popUntil("tbody")
			tb.mode = InTable
			return true
		}
	}
	tb.mode = InTable
	return true
}

func (tb *TreeBuilder) processInRow(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.StartTag:
		if tok.Name == "td" || tok.Name == "th" {
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InCell
			return false
		}
		if tok.Name == "tr" {
			tb.popUntil("tr")
			tb.mode = InTableBody
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tr":
			tb.popUntil("tr")
			tb.mode = InTableBody
			return false
		case "table":
			tb.popUntil("tr")
			tb.mode = InTableBody
			return true
		}
	}
	tb.mode = InTableBody
	return true
}

func (tb *TreeBuilder) processInCell(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.EndTag:
		if tok.Name == "td" || tok.Name == "th" {
			tb.popUntil(tok.Name)
			tb.mode = InRow
			return false
		}
		if tok.Name == "tr" || tok.Name == "table" {
			tb.popUntilAnyCell()
			tb.mode = InRow
			return true
		}
	case tokenizer.StartTag:
		if tok.Name == "td" || tok.Name == "th" {
			tb.popUntilAnyCell()
			tb.mode = InRow
			return true
		}
	}
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) popUntilAnyCell() {
	for len(tb.openElements) > 0 {
		name := tb.currentElement().TagName
		tb.popCurrent()
		if name == "td" || name == "th" {
			return
		}
	}
}

func (tb *TreeBuilder) processInSelect(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		tb.insertText(tok.Data)
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			tb.mode = InBody
			return true
		case "option":
			// If current node is option, pop it.
			if tb.currentElement() != nil && tb.currentElement().TagName == "option" {
				tb.popCurrent()
			}
			tb.insertElement("option", tok.Attrs)
			return false
		case "optgroup":
			if tb.currentElement() != nil && tb.currentElement().TagName == "option" {
				tb.popCurrent()
			}
			if tb.currentElement() != nil && tb.currentElement().TagName == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElement("optgroup", tok.Attrs)
			return false
		case "hr":
			if tb.currentElement() != nil && tb.currentElement().TagName == "option" {
				tb.popCurrent()
			}
			if tb.currentElement() != nil && tb.currentElement().TagName == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElement("hr", tok.Attrs)
			tb.popCurrent()
			return false
		case "select":
			// Close the current select.
			tb.popUntil("select")
			tb.mode = InBody
			return true
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "option":
			if tb.currentElement() != nil && tb.currentElement().TagName == "option" {
				tb.popCurrent()
			}
			return false
		case "optgroup":
			if tb.currentElement() != nil && tb.currentElement().TagName == "option" {
				tb.popCurrent()
			}
			if tb.currentElement() != nil && tb.currentElement().TagName == "optgroup" {
				tb.popCurrent()
			}
			return false
		case "select":
			tb.popUntil("select")
			tb.mode = InBody
			return false
		}
	case tokenizer.EOF:
		return false
	}
	return false
}

func (tb *TreeBuilder) processInSelectInTable(tok tokenizer.Token) bool {
	// If we see a table-affecting token, pop select and reprocess.
	if tok.Type == tokenizer.StartTag {
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			tb.popUntil("select")
			tb.mode = InTable
			return true
		}
	}
	if tok.Type == tokenizer.EndTag {
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			tb.popUntil("select")
			tb.mode = InTable
			return true
		}
	}
	return tb.processInSelect(tok)
}

// headLikeInTemplate are the start tags that the in-template insertion
// mode delegates straight to the in-head rules, per the HTML5 algorithm.
var headLikeInTemplate = map[string]bool{
	"base": true, "basefont": true, "bgsound": true, "link": true,
	"meta": true, "noframes": true, "script": true, "style": true,
	"template": true, "title": true,
}

// switchTemplateSubMode replaces the top of the template-insertion-mode
// stack with mode and switches the tree builder's current mode to match,
// implementing the "pop the current template insertion mode, push mode,
// switch" sequence shared by table/row/cell/col/caption starts.
func (tb *TreeBuilder) switchTemplateSubMode(mode InsertionMode) {
	tb.popTemplateMode()
	tb.pushTemplateMode(mode)
	tb.mode = mode
}

func (tb *TreeBuilder) processInTemplate(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.StartTag && headLikeInTemplate[tok.Name] {
		return tb.processInHead(tok)
	}
	if tok.Type == tokenizer.EndTag && tok.Name == "template" {
		return tb.processInHead(tok)
	}

	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			tb.switchTemplateSubMode(InTable)
			return true
		case "col":
			tb.switchTemplateSubMode(InColumnGroup)
			return true
		case "tr":
			tb.switchTemplateSubMode(InTableBody)
			return true
		case "td", "th":
			tb.switchTemplateSubMode(InRow)
			return true
		default:
			tb.switchTemplateSubMode(InBody)
			return true
		}
	case tokenizer.EndTag:
		tb.emitError(htmlerrors.UnexpectedCloseTag)
		return false
	case tokenizer.EOF:
		if !tb.elementInStack("template") {
			return false
		}
		tb.emitError(htmlerrors.MissingElementInOpenStack)
		tb.popUntil("template")
		tb.clearActiveFormattingUpToMarker()
		tb.popTemplateMode()
		tb.resetInsertionModeAppropriately()
		return true
	default:
		tb.switchTemplateSubMode(InBody)
		return true
	}
}

func (tb *TreeBuilder) processAfterBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.mode = InBody
			return true
		}
	case tokenizer.Comment:
		// Comments after body attach to the <html> element.
		if len(tb.openElements) > 0 {
			tb.openElements[0].AppendChild(dom.NewComment(tok.Data))
		} else {
			tb.document.AppendChild(dom.NewComment(tok.Data))
		}
		return false
	case tokenizer.StartTag:
		if tok.Name == "html" {
			tb.mode = InBody
			return true
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = AfterAfterBody
			return false
		}
	case tokenizer.EOF:
		return false
	}
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processInFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
		}
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "frameset":
			tb.insertElement("frameset", tok.Attrs)
			return false
		case "frame":
			tb.insertElement("frame", tok.Attrs)
			tb.popCurrent()
			return false
		case "noframes":
			tb.mode = InBody
			return true
		}
	case tokenizer.EndTag:
		if tok.Name == "frameset" {
			tb.popUntil("frameset")
			if !tb.elementInStack("frameset") {
				tb.mode = AfterFrameset
			}
			return false
		}
	case tokenizer.EOF:
		return false
	}
	return false
}

func (tb *TreeBuilder) processAfterFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
		}
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		if tok.Name == "html" {
			tb.mode = InBody
			return true
		}
		if tok.Name == "noframes" {
			tb.mode = InBody
			return true
		}
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = AfterAfterFrameset
			return false
		}
	case tokenizer.EOF:
		return false
	}
	return false
}

func (tb *TreeBuilder) processAfterAfterBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Comment:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.mode = InBody
			return true
		}
	case tokenizer.StartTag:
		if tok.Name == "html" {
			tb.mode = InBody
			return true
		}
	case tokenizer.EOF:
		return false
	}
	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processAfterAfterFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Comment:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return false
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.mode = InFrameset
			return true
		}
	case tokenizer.StartTag:
		if tok.Name == "html" {
			tb.mode = InBody
			return true
		}
	case tokenizer.EOF:
		return false
	}
	tb.mode = InBody
	return true
}
