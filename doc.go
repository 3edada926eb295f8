// Package cssurl resolves the assets referenced by CSS url() values, copies
// them into content-addressed output folders, and rewrites the references.
//
// # Quick Start
//
// Create a resolver, then resolve CSS text:
//
//	res, err := cssurl.NewResolver(
//	    cssurl.WithPublicPath("dist"),
//	    cssurl.WithAliases(cssurl.Alias{Prefix: "@assets", Target: "./static"}),
//	    cssurl.WithIncludePaths("node_modules"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := res.Resolve(ctx, cssurl.Input{
//	    CSS: "body { background: url('@assets/bg.png'); }",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result.CSS == "body { background: url(../img/<hash>.png); }"
//	// dist/img/<hash>.png now holds a copy of static/bg.png
//
// # Resolution Pipeline
//
// Each call to Resolve runs these stages over one document:
//
//  1. Location: every url(...) occurrence is found with its byte span
//  2. Resolution: aliases are substituted, then the path is looked up relative
//     to the base directory, then in each include path, in order
//  3. Classification: the file is hashed (xxHash64 by default) and its content
//     type is sniffed to pick a category folder (img, audio, video, fonts)
//  4. Rewrite: each resolved span is replaced by url(../<category>/<hash><ext>),
//     keeping any query string or fragment
//  5. Copy: each asset is copied to its destination, overwriting
//
// data: URIs, network URLs, and paths that cannot be found are left unchanged.
// They are not errors. An I/O failure on a file that was found aborts the
// document.
//
// # Output Lifecycle
//
// Resolve only creates directories. Removing stale output is a separate,
// once-per-build step: call CleanOutput before processing a batch. Running it
// per document would race with concurrent documents writing the same folders.
//
// # Concurrency
//
// A Resolver holds no mutable state and is safe for concurrent use. Documents
// referencing the same content write the same destination file with the same
// bytes.
package cssurl
