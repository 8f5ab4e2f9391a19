package pptx

import (
	"fmt"
	"strings"
	"time"
)

const (
	relTypeBase      = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`
	relOfficeDoc     = relTypeBase + `officeDocument`
	relExtendedProps = relTypeBase + `extended-properties`
	relCoreProps     = `http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties`
	relSlideMaster   = relTypeBase + `slideMaster`
	relSlideLayout   = relTypeBase + `slideLayout`
	relSlide         = relTypeBase + `slide`
	relTheme         = relTypeBase + `theme`
	relPresProps     = relTypeBase + `presProps`
	relViewProps     = relTypeBase + `viewProps`
	relTableStyles   = relTypeBase + `tableStyles`

	ctPML         = `application/vnd.openxmlformats-officedocument.presentationml.`
	ctPresMain    = ctPML + `presentation.main+xml`
	ctSlide       = ctPML + `slide+xml`
	ctSlideLayout = ctPML + `slideLayout+xml`
	ctSlideMaster = ctPML + `slideMaster+xml`
	ctPresProps   = ctPML + `presProps+xml`
	ctViewProps   = ctPML + `viewProps+xml`
	ctTableStyles = ctPML + `tableStyles+xml`
	ctTheme       = `application/vnd.openxmlformats-officedocument.theme+xml`
	ctCoreProps   = `application/vnd.openxmlformats-package.core-properties+xml`
	ctExtProps    = `application/vnd.openxmlformats-officedocument.extended-properties+xml`

	// ContentType is the MIME type of a .pptx file.
	ContentType = `application/vnd.openxmlformats-officedocument.presentationml.presentation`

	masterID      = 2147483648
	firstSlideID  = 256
	defaultAuthor = "stratiq"
)

var (
	layoutTitleFrame    = Rect{X: Inches(0.8), Y: Inches(2.2), W: SlideWidth - 2*Inches(0.8), H: Inches(1.5)}
	layoutSubtitleFrame = Rect{X: Inches(0.8), Y: Inches(3.9), W: SlideWidth - 2*Inches(0.8), H: Inches(0.9)}
	layoutHeadingFrame  = Rect{X: Inches(0.8), Y: Inches(0.4), W: SlideWidth - 2*Inches(0.8), H: Inches(0.8)}
	layoutBodyFrame     = Rect{X: Inches(0.8), Y: Inches(1.4), W: SlideWidth - 2*Inches(0.8), H: Inches(5.3)}
)

type relationship struct {
	id, typ, target string
}

func relsXML(rels []relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, r := range rels {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, r.id, r.typ, r.target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func contentTypesXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	override := func(part, ct string) {
		fmt.Fprintf(&b, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override("ppt/presentation.xml", ctPresMain)
	override("ppt/slideMasters/slideMaster1.xml", ctSlideMaster)
	for i := range Layouts {
		override(layoutPart(i), ctSlideLayout)
	}
	for i := 0; i < slides; i++ {
		override(slidePart(i), ctSlide)
	}
	override("ppt/theme/theme1.xml", ctTheme)
	override("ppt/presProps.xml", ctPresProps)
	override("ppt/viewProps.xml", ctViewProps)
	override("ppt/tableStyles.xml", ctTableStyles)
	override("docProps/core.xml", ctCoreProps)
	override("docProps/app.xml", ctExtProps)
	b.WriteString(`</Types>`)
	return b.String()
}

func layoutPart(i int) string { return fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1) }
func slidePart(i int) string  { return fmt.Sprintf("ppt/slides/slide%d.xml", i+1) }

func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation ` + pmlNamespaces + ` saveSubsetFonts="1">`)
	fmt.Fprintf(&b, `<p:sldMasterIdLst><p:sldMasterId id="%d" r:id="rId1"/></p:sldMasterIdLst>`, masterID)
	if slides > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := 0; i < slides; i++ {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, firstSlideID+i, i+2)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/><p:notesSz cx="6858000" cy="9144000"/>`, SlideWidth, SlideHeight)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRels(slides int) []relationship {
	rels := []relationship{{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"}}
	for i := 0; i < slides; i++ {
		rels = append(rels, relationship{fmt.Sprintf("rId%d", i+2), relSlide, fmt.Sprintf("slides/slide%d.xml", i+1)})
	}
	next := slides + 2
	for _, r := range []struct{ typ, target string }{
		{relPresProps, "presProps.xml"},
		{relViewProps, "viewProps.xml"},
		{relTheme, "theme/theme1.xml"},
		{relTableStyles, "tableStyles.xml"},
	} {
		rels = append(rels, relationship{fmt.Sprintf("rId%d", next), r.typ, r.target})
		next++
	}
	return rels
}

func rootRels() []relationship {
	return []relationship{
		{"rId1", relOfficeDoc, "ppt/presentation.xml"},
		{"rId2", relCoreProps, "docProps/core.xml"},
		{"rId3", relExtendedProps, "docProps/app.xml"},
	}
}

func coreXML(title, author string, created time.Time) string {
	if author == "" {
		author = defaultAuthor
	}
	stamp := created.UTC().Format(time.RFC3339)
	return xmlHeader + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + esc(title) + `</dc:title><dc:creator>` + esc(author) + `</dc:creator>` +
		`<cp:lastModifiedBy>` + esc(author) + `</cp:lastModifiedBy>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

func appXML(slides int) string {
	return xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
		`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>stratiq</Application><PresentationFormat>Widescreen</PresentationFormat>` +
		fmt.Sprintf(`<Slides>%d</Slides>`, slides) + `</Properties>`
}

const presPropsXML = xmlHeader + `<p:presentationPr ` + pmlNamespaces + `/>`

const viewPropsXML = xmlHeader + `<p:viewPr ` + pmlNamespaces + `><p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`

const tableStylesXML = xmlHeader + `<a:tblStyleLst xmlns:a="` + nsA + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`

func masterXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sldMaster ` + pmlNamespaces + `><p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>`)
	t := newSpTree()
	t.placeholder("Title Placeholder", `type="title"`, layoutHeadingFrame, nil)
	t.placeholder("Text Placeholder", `type="body" idx="1"`, layoutBodyFrame, nil)
	b.WriteString(t.close())
	b.WriteString(`</p:cSld>`)
	b.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
		`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	b.WriteString(`<p:sldLayoutIdLst>`)
	for i := range Layouts {
		fmt.Fprintf(&b, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, masterID+1+i, i+1)
	}
	b.WriteString(`</p:sldLayoutIdLst>`)
	b.WriteString(`<p:txStyles>`)
	b.WriteString(`<p:titleStyle><a:lvl1pPr algn="l"><a:defRPr sz="3200" b="1"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
		`<a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr></p:titleStyle>`)
	b.WriteString(`<p:bodyStyle><a:lvl1pPr marL="285750" indent="-285750"><a:spcAft><a:spcPts val="600"/></a:spcAft>` +
		`<a:buFont typeface="Arial"/><a:buChar char="•"/><a:defRPr sz="1700"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill>` +
		`<a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr></p:bodyStyle>`)
	b.WriteString(`<p:otherStyle><a:defPPr><a:defRPr lang="en-US"/></a:defPPr></p:otherStyle>`)
	b.WriteString(`</p:txStyles></p:sldMaster>`)
	return b.String()
}

func masterRels() []relationship {
	rels := make([]relationship, 0, len(Layouts)+1)
	for i := range Layouts {
		rels = append(rels, relationship{fmt.Sprintf("rId%d", i+1), relSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1)})
	}
	return append(rels, relationship{fmt.Sprintf("rId%d", len(Layouts)+1), relTheme, "../theme/theme1.xml"})
}

func layoutXML(l Layout) string {
	t := newSpTree()
	var typ string
	switch l {
	case LayoutTitle:
		typ = "title"
		t.placeholder("Title", `type="ctrTitle"`, layoutTitleFrame, nil)
		t.placeholder("Subtitle", `type="subTitle" idx="1"`, layoutSubtitleFrame, nil)
	case LayoutTitleAndBody:
		typ = "obj"
		t.placeholder("Title", `type="title"`, layoutHeadingFrame, nil)
		t.placeholder("Content Placeholder", `idx="1"`, layoutBodyFrame, nil)
	default:
		typ = "titleOnly"
		t.placeholder("Title", `type="title"`, layoutHeadingFrame, nil)
	}
	return xmlHeader + fmt.Sprintf(`<p:sldLayout %s type="%s" preserve="1"><p:cSld name="%s">`, pmlNamespaces, typ, esc(l.String())) +
		t.close() + `</p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

var layoutRels = []relationship{{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"}}

func slideRels(l Layout) []relationship {
	return []relationship{{"rId1", relSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", int(l)+1)}}
}

func themeXML() string {
	clr := func(tag, val string) string {
		return `<a:` + tag + `><a:srgbClr val="` + val + `"/></a:` + tag + `>`
	}
	font := `<a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/>`
	fill := `<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`
	line := `<a:ln w="6350">` + fill + `</a:ln>`
	effect := `<a:effectStyle><a:effectLst/></a:effectStyle>`
	return xmlHeader + `<a:theme xmlns:a="` + nsA + `" name="Stratiq"><a:themeElements>` +
		`<a:clrScheme name="Stratiq">` +
		clr("dk1", "111827") + clr("lt1", "FFFFFF") + clr("dk2", "1E40AF") + clr("lt2", "E5E7EB") +
		clr("accent1", "1E40AF") + clr("accent2", "10B981") + clr("accent3", "4B5563") +
		clr("accent4", "F59E0B") + clr("accent5", "6366F1") + clr("accent6", "EF4444") +
		clr("hlink", "2563EB") + clr("folHlink", "7C3AED") +
		`</a:clrScheme>` +
		`<a:fontScheme name="Stratiq"><a:majorFont>` + font + `</a:majorFont><a:minorFont>` + font + `</a:minorFont></a:fontScheme>` +
		`<a:fmtScheme name="Stratiq">` +
		`<a:fillStyleLst>` + strings.Repeat(fill, 3) + `</a:fillStyleLst>` +
		`<a:lnStyleLst>` + strings.Repeat(line, 3) + `</a:lnStyleLst>` +
		`<a:effectStyleLst>` + strings.Repeat(effect, 3) + `</a:effectStyleLst>` +
		`<a:bgFillStyleLst>` + strings.Repeat(fill, 3) + `</a:bgFillStyleLst>` +
		`</a:fmtScheme></a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`
}
