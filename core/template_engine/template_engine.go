package template_engine

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/shared"
)

// TemplateData is what `.tmpl` files render against.
type TemplateData struct {
	Name        string
	DisplayName string
	TypeScript  bool
	Framework   string
	Tailwind    bool
}

// CopyOptions tune a folder copy. Rename maps a single path segment to its
// output name; Excludes are doublestar patterns matched against paths
// relative to the template set. Files matching Executable are written 0755.
type CopyOptions struct {
	Rename     func(name string) string
	Excludes   []string
	Executable []string
}

type TemplateEngine struct {
	fsys    fs.FS
	funcMap template.FuncMap
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"title":   shared.ToTitle,
		"trim":    strings.TrimSpace,
		"replace": strings.ReplaceAll,
		"join":    strings.Join,
		"default": func(def, val interface{}) interface{} {
			if val == nil || val == "" {
				return def
			}
			return val
		},
	}
}

// NewTemplateEngine reads from the embedded template tree.
func NewTemplateEngine() *TemplateEngine {
	sub, err := fs.Sub(TemplateFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("embedded templates missing: %v", err))
	}
	return NewTemplateEngineFS(sub)
}

// NewTemplateEngineFS reads template sets from the root of fsys.
func NewTemplateEngineFS(fsys fs.FS) *TemplateEngine {
	return &TemplateEngine{fsys: fsys, funcMap: getDefaultFuncMap()}
}

func (te *TemplateEngine) AddFunc(name string, fn interface{}) {
	te.funcMap[name] = fn
}

// GenerateFolder copies the template set into outputDir. Files ending in
// .tmpl are rendered with data and lose the suffix; everything else is copied
// byte for byte.
func (te *TemplateEngine) GenerateFolder(set, outputDir string, data interface{}, opts CopyOptions) error {
	if err := te.ValidateTemplate(set); err != nil {
		return err
	}
	logger.Debug("Generating folder from template set %s into %s", set, outputDir)

	return fs.WalkDir(te.fsys, set, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == set {
			return nil
		}

		rel := strings.TrimPrefix(p, set+"/")
		excluded, err := matchesAny(opts.Excludes, rel)
		if err != nil {
			return err
		}
		if excluded {
			logger.Debug("Skipping excluded template path %s", rel)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		outputPath := filepath.Join(outputDir, filepath.FromSlash(renamePath(rel, opts.Rename)))

		if d.IsDir() {
			return os.MkdirAll(outputPath, os.ModePerm)
		}
		executable, err := matchesAny(opts.Executable, rel)
		if err != nil {
			return err
		}
		mode := fs.FileMode(0644)
		if executable {
			mode = 0755
		}
		return te.generateFileFromPath(p, outputPath, data, mode)
	})
}

func renamePath(rel string, rename func(string) string) string {
	if rename == nil {
		return rel
	}
	segments := strings.Split(rel, "/")
	for i, segment := range segments {
		if renamed := rename(segment); renamed != "" {
			segments[i] = renamed
		}
	}
	return path.Join(segments...)
}

func matchesAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return false, fmt.Errorf("invalid pattern %q", pattern)
		}
		match, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

func (te *TemplateEngine) generateFileFromPath(templatePath, outputPath string, data interface{}, mode fs.FileMode) error {
	content, err := fs.ReadFile(te.fsys, templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if !strings.HasSuffix(templatePath, ".tmpl") {
		if err := os.WriteFile(outputPath, content, mode); err != nil {
			return err
		}
		// WriteFile keeps the mode of a file an earlier layer created.
		return os.Chmod(outputPath, mode)
	}

	outputPath = strings.TrimSuffix(outputPath, ".tmpl")

	tmpl, err := template.New(path.Base(templatePath)).Funcs(te.funcMap).Parse(string(content))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	outputFile, err := os.OpenFile(outputPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer outputFile.Close()

	if err := tmpl.Execute(outputFile, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}

	return os.Chmod(outputPath, mode)
}

// ListTemplates returns every file in the set, relative to the template root.
func (te *TemplateEngine) ListTemplates(set string) ([]string, error) {
	var templates []string
	err := fs.WalkDir(te.fsys, set, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			templates = append(templates, p)
		}
		return nil
	})
	return templates, err
}

func (te *TemplateEngine) ValidateTemplate(set string) error {
	info, err := fs.Stat(te.fsys, set)
	if err != nil {
		return fmt.Errorf("template not found: %s", set)
	}
	if !info.IsDir() {
		return fmt.Errorf("template %s is not a directory", set)
	}
	return nil
}
