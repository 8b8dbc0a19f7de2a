// Package stitchjob turns a resume written in XML and a cover letter written
// in Markdown into LaTeX sources, and optionally compiles them to PDF.
//
// # Quick Start
//
//	svc, err := stitchjob.NewService()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := svc.StitchResume(ctx, stitchjob.ResumeInput{
//	    Source: "resume/resume.xml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.TexPath)
//
// # Resume Pipeline
//
//  1. The XML source is loaded into a closed set of nodes: contact block,
//     sections, and the experience, degree, skills and description children.
//  2. Each node renders itself; every text field goes through one shared
//     escaping pipeline (normalize whitespace, escape, smarten quotes).
//  3. The fragments are assembled under the stitched document class and
//     written atomically beside the source.
//  4. With Compile set, the class file is placed next to the .tex file and
//     pdflatex runs on it.
//
// # Letter Pipeline
//
// A letter body is Markdown with optional YAML front matter. Its contact
// block comes from a companion resume. The signature image and date are
// resolved, the body and metadata are escaped once, and the result fills
// the letter template.
//
// # Errors
//
// Failures are reported as distinct sentinel kinds, checked with errors.Is:
// ErrSourceNotFound, ErrSourceParse, ErrUnknownTag, ErrSignatureNotFound,
// ErrOutputNotWritable, ErrCompile. No output file is left behind when an
// error occurs before writing.
package stitchjob
