// Package tccexport exports academic manuscripts (thesis and capstone
// reports) from rich-text chapter markup to DOCX, PDF and Markdown.
//
// # Quick Start
//
// Create an exporter and export a manuscript:
//
//	exp, err := tccexport.NewExporter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	art, err := exp.ExportDOCX(ctx, tccexport.Manuscript{
//	    Title:      "Impacto da IA na Educação",
//	    CourseName: "Pedagogia",
//	    Chapters: []tccexport.Chapter{
//	        {Title: "Introdução", ContentMarkup: "<p>Texto...</p>", Order: 0},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(art.Filename, art.Data, 0o644) // Impacto_da_IA_na_Educação_TCC.docx
//
// # Export Pipeline
//
// Chapter markup is a constrained HTML subset: p, h1-h4, ul, ol and
// blockquote blocks holding b/strong, i/em, s/strike and u runs, aligned
// with a text-align style or an align attribute. Each export:
//
//  1. copies the manuscript and sorts chapters by Order
//  2. parses chapter markup into blocks (unknown tags degrade to paragraphs)
//  3. DOCX: builds a document model (title, subtitle, one page-broken
//     heading per chapter) and writes a WordprocessingML package
//  4. PDF: strips markup and lays the plain text out line by line on
//     fixed-size pages
//  5. Markdown: converts the markup to CommonMark
//
// Every failure is returned as *ExportError; use errors.Is with the
// sentinel errors to inspect the cause.
//
// # Formatting Profiles
//
// Fonts, spacing, margins and page size come from a Profile. The built-in
// profiles are "default" (the original editor's formatting), "abnt" and
// "apa":
//
//	exp, err := tccexport.NewExporter(tccexport.WithProfileName("abnt"))
//
// Custom profiles are YAML files under {assetPath}/profiles/:
//
//	exp, err := tccexport.NewExporter(
//	    tccexport.WithAssetPath("/path/to/assets"),
//	    tccexport.WithProfileName("my-university"),
//	)
//
// # Importing Content
//
// Manuscript.Import brings external HTML or Markdown into a chapter,
// sanitized to the supported markup:
//
//	id, err := m.Import(ctx, tccexport.ImportRequest{
//	    Mode:    tccexport.ImportNew,
//	    Title:   "Metodologia",
//	    Content: "## Abordagem\n\nPesquisa **qualitativa**.",
//	    Type:    tccexport.SourceMarkdown,
//	})
package tccexport
