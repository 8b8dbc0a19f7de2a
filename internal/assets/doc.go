// Package assets provides the LaTeX class file and letter template used to
// emit documents. Assets can be loaded from embedded files or a custom
// filesystem path.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from the go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the service uses. A custom directory may override
// just the class or just the template; anything it lacks comes from the
// embedded defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── classes/
//	│   └── {name}.cls      # document class (e.g., stitched.cls)
//	└── templates/
//	    └── {name}.tex      # letter template (e.g., letter.tex)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
