package github

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

// DefaultMethodsURL is the community collection of method documents.
const DefaultMethodsURL = "https://github.com/k4ntz/cleva_methods/tree/master/methods"

// ErrRepositoryURL is returned for a URL that names a whole repository.
var ErrRepositoryURL = errors.New(errors.ErrCodeInvalidURL,
	"the URL points to a complete repository; use 'git clone' to download it")

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)

	repoOnlyURL = regexp.MustCompile(`^https://github\.com/[^/]+/[^/]+?(?:\.git)?/?$`)
	treeURL     = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/(tree|blob)/([^/]+)(?:/(.*))?$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New(errors.ErrCodeInvalidURL, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidURL, "invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", owner)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return errors.New(errors.ErrCodeInvalidURL, "repo is required")
	}
	if !validRepo.MatchString(repo) {
		return errors.New(errors.ErrCodeInvalidURL, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", repo)
	}
	return nil
}

// TreeRef locates a directory or file in a repository at a given ref.
type TreeRef struct {
	Owner string
	Repo  string
	Ref   string // branch, tag or commit
	Path  string // slash separated, no leading slash
}

// ParseTreeURL parses a GitHub tree or blob URL.
func ParseTreeURL(rawURL string) (TreeRef, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := errors.ValidateURL(rawURL); err != nil {
		return TreeRef{}, err
	}
	if repoOnlyURL.MatchString(rawURL) {
		return TreeRef{}, ErrRepositoryURL
	}
	m := treeURL.FindStringSubmatch(rawURL)
	if m == nil {
		return TreeRef{}, errors.New(errors.ErrCodeInvalidURL,
			"not a GitHub tree or blob URL: %s (expected https://github.com/<owner>/<repo>/tree/<ref>/<path>)", rawURL)
	}
	ref := TreeRef{
		Owner: m[1],
		Repo:  strings.TrimSuffix(m[2], ".git"),
		Ref:   m[4],
		Path:  strings.Trim(m[5], "/"),
	}
	if err := ValidateOwner(ref.Owner); err != nil {
		return TreeRef{}, err
	}
	if err := ValidateRepo(ref.Repo); err != nil {
		return TreeRef{}, err
	}
	return ref, nil
}

// ContentsURL returns the contents API URL for r below baseURL
// (normally https://api.github.com).
func (r TreeRef) ContentsURL(baseURL string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		strings.TrimSuffix(baseURL, "/"), r.Owner, r.Repo, r.Path, url.QueryEscape(r.Ref))
}

// Child returns the ref for a path inside the same repository and ref.
func (r TreeRef) Child(path string) TreeRef {
	r.Path = strings.Trim(path, "/")
	return r
}

func (r TreeRef) String() string {
	return fmt.Sprintf("%s/%s@%s:%s", r.Owner, r.Repo, r.Ref, r.Path)
}
