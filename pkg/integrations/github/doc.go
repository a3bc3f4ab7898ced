// Package github downloads method documents from a GitHub directory.
//
// # Overview
//
// Compass entries for published methods are shared as JSON documents in a
// GitHub repository. [FetchMethods] takes the browser URL of a directory (or
// a single file) and mirrors it into a local directory:
//
//	res, err := github.FetchMethods(ctx, github.DefaultMethodsURL, github.FetchOptions{
//	    OutputDir: "methods",
//	})
//	fmt.Printf("%d new, %d already present\n", len(res.New), len(res.Existing))
//
// Files already present locally are skipped. Sub-directories are walked
// recursively; with Flatten every file lands directly in OutputDir.
//
// # URLs
//
// [ParseTreeURL] accepts https://github.com/<owner>/<repo>/tree/<ref>/<path>
// and the equivalent blob URL. A bare repository URL is rejected with
// [ErrRepositoryURL]; clone it with git instead.
//
// # Failure
//
// Listings go through the contents API and are retried on 5xx responses.
// Any other failure, including cancellation, aborts the whole fetch. Files
// written before the failure are left in place.
//
// # Authentication
//
// A token is optional. Without one GitHub allows 60 API requests per hour.
package github
