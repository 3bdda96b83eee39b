// Package assets embeds the VIVALY policy stylesheet.
//
// The stylesheet is fixed at compile time: there is one style, "vivaly",
// and no way to swap it at runtime. Syntax highlighting colors are generated
// from a chroma style and appended to it by Stylesheet.
//
//	styles/
//	└── vivaly.css
//
// Asset names are validated so a name can never address a file outside
// the embedded styles directory.
package assets
