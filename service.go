package stitchjob

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/alnah/go-stitchjob/internal/assets"
	"github.com/alnah/go-stitchjob/internal/fileutil"
	"github.com/alnah/go-stitchjob/internal/latex"
	"github.com/alnah/go-stitchjob/internal/letter"
	"github.com/alnah/go-stitchjob/internal/pipeline"
	"github.com/alnah/go-stitchjob/internal/resume"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BodyConverter = (*pipeline.LaTeXConverter)(nil)
	_ pipeline.Preprocessor  = (*pipeline.MarkdownPreprocessor)(nil)
	_ assets.AssetLoader     = (*assets.AssetResolver)(nil)
	_ CommandRunner          = (*ExecRunner)(nil)
)

// outputPerm is the mode of written .tex and class files.
const outputPerm = 0o644

// Service converts resumes and letters. It holds no per-conversion state and
// is safe for concurrent use.
type Service struct {
	logger    *slog.Logger
	assetPath string
	assets    assets.AssetLoader
	body      pipeline.BodyConverter
	compiler  *Compiler
	now       func() time.Time
}

// NewService creates a Service with default configuration.
// Returns error if the asset path is invalid.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		logger: discardLogger(),
		body:   pipeline.NewLaTeXConverter(latex.Options{Mode: latex.ModePlain}),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	resolver, err := assets.NewAssetResolver(s.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	s.assets = resolver

	if s.compiler == nil {
		s.compiler = NewCompiler()
	}

	return s, nil
}

// StitchResume loads the resume at in.Source, writes its LaTeX rendering,
// places the class file beside it, and compiles it when in.Compile is set.
// A source error leaves no file behind.
func (s *Service) StitchResume(ctx context.Context, in ResumeInput) (*Result, error) {
	mode, err := latex.ParseMode(in.Escaping, latex.ModeMath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEscaping, err)
	}

	s.logger.Debug("parsing resume", "source", in.Source, "escaping", mode)
	doc, err := resume.Load(in.Source, resume.WithMode(mode), resume.WithClass(in.Class))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{TexPath: outputPath(in.Source, in.Output)}
	s.logger.Debug("writing tex file", "path", res.TexPath, "sections", len(doc.Sections))
	if err := writeOutput(res.TexPath, doc.Render()); err != nil {
		return nil, err
	}

	res.ClassPath, err = s.placeClass(doc.Class, filepath.Dir(res.TexPath))
	if err != nil {
		return nil, err
	}

	if in.Compile {
		if err := s.compile(ctx, res); err != nil {
			return nil, err
		}
		if res.Pages > 1 {
			s.logger.Warn("resume is longer than one page", "path", res.PDFPath, "pages", res.Pages)
		}
	}
	return res, nil
}

// placeClass writes the class file into dir. A class that is neither bundled
// nor under the asset path is expected from the TeX installation.
func (s *Service) placeClass(class, dir string) (string, error) {
	content, err := s.assets.LoadClass(class)
	if err != nil {
		s.logger.Debug("class not bundled, relying on TeX installation", "class", class, "error", err)
		return "", nil
	}
	path := filepath.Join(dir, assets.ClassFileName(class))
	s.logger.Debug("ensuring class file", "path", path)
	if err := writeOutput(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// StitchLetter builds the letter at in.Body with the contact block of
// in.Resume, fills the letter template and writes it, compiling when
// in.Compile is set.
func (s *Service) StitchLetter(ctx context.Context, in LetterInput) (*Result, error) {
	l, err := letter.Build(in.Body, in.Resume, letter.SignatureOptions(in.Signature))
	if err != nil {
		return nil, err
	}
	if l.Signature != "" {
		s.logger.Debug("using signature image", "path", l.Signature)
	}

	if err := l.ResolveDate(in.DateFormat, s.now()); err != nil {
		return nil, err
	}
	if err := l.Escape(ctx, s.body); err != nil {
		return nil, err
	}

	name := in.Template
	if name == "" {
		name = assets.DefaultLetterTemplate
	}
	text, err := s.assets.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := letter.ParseTemplate(name, text)
	if err != nil {
		return nil, err
	}
	out, err := l.Render(tmpl)
	if err != nil {
		return nil, err
	}

	res := &Result{TexPath: outputPath(in.Body, in.Output)}
	s.logger.Debug("writing tex file", "path", res.TexPath, "metadata", l.Keys())
	if err := writeOutput(res.TexPath, out); err != nil {
		return nil, err
	}

	if in.Compile {
		if err := s.compile(ctx, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// compile runs the compiler on res.TexPath and records the PDF and its
// page count. An unreadable PDF is logged, not fatal.
func (s *Service) compile(ctx context.Context, res *Result) error {
	s.logger.Debug("compiling pdf", "path", res.TexPath, "command", s.compiler.Command, "runs", s.compiler.Runs)
	pdfPath, err := s.compiler.Compile(ctx, res.TexPath)
	if err != nil {
		return err
	}
	res.PDFPath = pdfPath

	pages, err := PageCount(pdfPath)
	if err != nil {
		s.logger.Warn("cannot count pages", "path", pdfPath, "error", err)
		return nil
	}
	res.Pages = pages
	return nil
}

// outputPath returns output, or source with a .tex extension.
func outputPath(source, output string) string {
	if output != "" {
		return output
	}
	return fileutil.ReplaceExt(source, ".tex")
}

// writeOutput writes content atomically to path.
func writeOutput(path, content string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(content), outputPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputNotWritable, path, err)
	}
	return nil
}
