package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/temirov/hooklint/internal/manifest"
)

const (
	temporaryDirectoryPatternConstant    = "hooklint-verify-*"
	temporaryDirectoryErrorTemplate      = "failed to create temporary clone directory: %w"
	cloneErrorTemplateConstant           = "failed to clone %s: %w"
	revisionResolveErrorTemplateConstant = "revision %q not found in %s: %w"
	checkoutErrorTemplateConstant        = "failed to check out %s at %s: %w"
	manifestMissingErrorTemplateConstant = "%s has no %s at revision %s"

	shallowCloneDepthConstant = 1
)

var commitHashRevisionPattern = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

// ProviderResolver fetches the hook manifest a provider advertises at a revision.
type ProviderResolver interface {
	ResolveManifest(executionContext context.Context, repositoryURL string, revision string) ([]manifest.Definition, error)
}

// GitProviderResolver resolves provider manifests by cloning repositories.
type GitProviderResolver struct{}

// NewGitProviderResolver constructs a resolver backed by go-git.
func NewGitProviderResolver() *GitProviderResolver {
	return &GitProviderResolver{}
}

// ResolveManifest clones the provider repository, checks out the pinned
// revision, and loads the hook manifest from the repository root.
func (resolver *GitProviderResolver) ResolveManifest(executionContext context.Context, repositoryURL string, revision string) ([]manifest.Definition, error) {
	cloneDirectory, temporaryDirectoryError := os.MkdirTemp("", temporaryDirectoryPatternConstant)
	if temporaryDirectoryError != nil {
		return nil, fmt.Errorf(temporaryDirectoryErrorTemplate, temporaryDirectoryError)
	}
	defer os.RemoveAll(cloneDirectory)

	repository, cloneError := resolver.cloneProvider(executionContext, cloneDirectory, repositoryURL, revision)
	if cloneError != nil {
		return nil, fmt.Errorf(cloneErrorTemplateConstant, repositoryURL, cloneError)
	}

	resolvedHash, resolveError := repository.ResolveRevision(plumbing.Revision(revision))
	if resolveError != nil {
		return nil, fmt.Errorf(revisionResolveErrorTemplateConstant, revision, repositoryURL, resolveError)
	}

	workTree, workTreeError := repository.Worktree()
	if workTreeError != nil {
		return nil, fmt.Errorf(checkoutErrorTemplateConstant, repositoryURL, revision, workTreeError)
	}
	if checkoutError := workTree.Checkout(&gogit.CheckoutOptions{Hash: *resolvedHash}); checkoutError != nil {
		return nil, fmt.Errorf(checkoutErrorTemplateConstant, repositoryURL, revision, checkoutError)
	}

	manifestPath := filepath.Join(cloneDirectory, manifest.FileName)
	if _, statError := os.Stat(manifestPath); statError != nil {
		return nil, fmt.Errorf(manifestMissingErrorTemplateConstant, repositoryURL, manifest.FileName, revision)
	}

	return manifest.Load(manifestPath)
}

// cloneProvider fetches the provider repository. Tag-like revisions use a
// shallow single-reference clone; bare commit hashes are not addressable as a
// clone reference, so those fall back to a full clone, as does a revision the
// remote does not advertise as a tag.
func (resolver *GitProviderResolver) cloneProvider(executionContext context.Context, cloneDirectory string, repositoryURL string, revision string) (*gogit.Repository, error) {
	if !commitHashRevisionPattern.MatchString(revision) {
		repository, shallowCloneError := gogit.PlainCloneContext(executionContext, cloneDirectory, false, &gogit.CloneOptions{
			URL:           repositoryURL,
			ReferenceName: plumbing.NewTagReferenceName(revision),
			SingleBranch:  true,
			Depth:         shallowCloneDepthConstant,
		})
		if shallowCloneError == nil {
			return repository, nil
		}
		if removeError := os.RemoveAll(cloneDirectory); removeError != nil {
			return nil, removeError
		}
	}

	return gogit.PlainCloneContext(executionContext, cloneDirectory, false, &gogit.CloneOptions{
		URL: repositoryURL,
	})
}
