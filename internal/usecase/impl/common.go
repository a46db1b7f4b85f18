// Package impl contains the usecase implementations. Every operation
// follows the same shape: resolve the subject, authorize, validate the
// payload, apply the domain rules, persist, project.
package impl

import (
	"context"
	"log/slog"
	"mime"
	"time"

	"pocketlib/internal/domain/constants"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/localized"
	"pocketlib/internal/domain/repository"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/errors"
	"pocketlib/internal/usecase"

	"pocketlib/internal/domain/entity"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// analyzeTimeout bounds one background image analysis run.
const analyzeTimeout = 3 * time.Minute

var allowedImageTypes = []string{"image/png", "image/jpeg"}

var allowedFileTypes = []string{"application/pdf", "application/epub+zip"}

// mapLoad converts repository errors on a direct load into AppErrors.
// A kind mismatch is reported as an access violation, not absence.
func mapLoad(err error, notFound domainerrors.AppError) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrWrongKind):
		return domainerrors.ErrActionNotAllowed
	default:
		return errors.Wrap(err, "load record")
	}
}

// parseID parses a path id, mapping garbage to the resource's not-found
// error instead of a generic 400.
func parseID(id string, notFound domainerrors.AppError) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}

	return parsed, nil
}

// normalizeLanguages validates the languages selector and falls back to
// the default language when none was requested.
func normalizeLanguages(languages []string) ([]string, error) {
	if len(languages) == 0 {
		return []string{constants.DefaultLanguage}, nil
	}
	for _, lang := range languages {
		if !constants.LanguageSupported(lang) {
			return nil, domainerrors.ErrLanguageNotSupported
		}
	}

	return languages, nil
}

// validLanguageParam checks a language path parameter.
func validLanguageParam(language string) bool {
	return constants.LanguageSupported(language)
}

// resolveName loads the localized children of a parent and resolves the
// best match for the requested languages plus the full list.
func resolveName(ctx context.Context, store localized.Store, ids []uuid.UUID, languages []string) (*usecase.LocalizedValue, []usecase.LocalizedValue, error) {
	registry := localized.NewRegistry(store)
	children, err := registry.List(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	all := make([]usecase.LocalizedValue, 0, len(children))
	for _, child := range children {
		all = append(all, usecase.LocalizedValue{Language: child.Language, Value: child.Value})
	}

	best := localized.Resolve(children, languages, constants.DefaultLanguage)
	if best == nil {
		return nil, all, nil
	}

	return &usecase.LocalizedValue{Language: best.Language, Value: best.Value}, all, nil
}

// checkDeclaredType rejects uploads whose declared Content-Type is not
// in the allowed set. An absent header passes; sniffing still decides
// what actually gets stored.
func checkDeclaredType(contentType string, allowed []string) error {
	if contentType == "" {
		return nil
	}

	declared, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return domainerrors.ErrContentTypeNotSupported
	}
	for _, candidate := range allowed {
		if declared == candidate {
			return nil
		}
	}

	return domainerrors.ErrContentTypeNotSupported
}

// sniffImage verifies the uploaded bytes are a supported image type and
// returns the detected content type.
func sniffImage(data []byte) (string, error) {
	detected := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if detected.Is(allowed) {
			return detected.String(), nil
		}
	}

	return "", domainerrors.ErrContentTypeNotSupported
}

// sniffBookFile verifies the uploaded bytes are a supported book format.
func sniffBookFile(data []byte) (string, error) {
	detected := mimetype.Detect(data)
	for _, allowed := range allowedFileTypes {
		if detected.Is(allowed) {
			return detected.String(), nil
		}
	}

	return "", domainerrors.ErrContentTypeNotSupported
}

// storeImage writes the image bytes to the blob store under the ref's
// item id, allocating one on first upload. The analysis byproducts are
// cleared; they are recomputed asynchronously.
func storeImage(ctx context.Context, blobs service.BlobService, ref *entity.ImageRef, data []byte) error {
	contentType, err := sniffImage(data)
	if err != nil {
		return err
	}

	if ref.ItemID == uuid.Nil {
		ref.ItemID = uuid.New()
	}
	if err := blobs.Put(ctx, ref.ItemID.String(), &service.Blob{Data: data, ContentType: contentType}); err != nil {
		return domainerrors.ErrUpstream.WrapMessage("store image")
	}

	ref.Blurhash = ""
	ref.AspectRatio = ""

	return nil
}

// fetchBlob loads a stored blob by item id, treating absence as the
// resource's not-found error.
func fetchBlob(ctx context.Context, blobs service.BlobService, itemID uuid.UUID, notFound domainerrors.AppError) (*service.Blob, error) {
	if itemID == uuid.Nil {
		return nil, notFound
	}
	blob, err := blobs.Get(ctx, itemID.String())
	if err != nil {
		return nil, domainerrors.ErrUpstream.WrapMessage("fetch blob")
	}

	return blob, nil
}

// analyzeImageAsync computes blurhash and aspect ratio in the background
// and hands the result to apply, which re-reads and persists the owner.
// Responses never wait for this.
func analyzeImageAsync(logger *slog.Logger, analyzer service.ImageAnalyzer, data []byte, apply func(ctx context.Context, analysis *service.ImageAnalysis) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		analysis, err := analyzer.Analyze(ctx, data)
		if err != nil {
			logger.Debug("image analysis skipped", slog.Any("error", err))

			return
		}
		if err := apply(ctx, analysis); err != nil {
			logger.Warn("storing image analysis failed", slog.Any("error", err))
		}
	}()
}

// imageView converts an entity image ref into its response shape.
func imageView(ref entity.ImageRef) usecase.OptionalImage {
	if !ref.Present() {
		return usecase.OptionalImage{}
	}

	return usecase.OptionalImage{
		Set:   true,
		Image: usecase.ImageView{Blurhash: ref.Blurhash, AspectRatio: ref.AspectRatio},
	}
}

// fileView converts an entity file ref into its response shape.
func fileView(ref entity.FileRef) usecase.OptionalFile {
	if !ref.Present() {
		return usecase.OptionalFile{}
	}

	return usecase.OptionalFile{Set: true, File: usecase.FileView{FileName: ref.FileName}}
}

// newItemID allocates a blob item id.
func newItemID() uuid.UUID {
	return uuid.New()
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}

// resolveCategoryKeys maps category keys from a payload to category ids.
// Unknown keys are a validation failure on the categories field.
func resolveCategoryKeys(ctx context.Context, categories repository.CategoryRepository, keys []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(keys))
	for _, key := range keys {
		category, err := categories.FindByKey(ctx, key)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domainerrors.NewValidationError(domainerrors.FieldCode{
					Code:    codes(fieldCategories).InvalidValue,
					Message: "The field categories contains an unknown key",
				})
			}

			return nil, errors.Wrap(err, "resolve category key")
		}
		ids = append(ids, category.UUID)
	}

	return ids, nil
}

// categoryKeys maps stored category ids back to their keys for views.
// Dangling ids are skipped.
func categoryKeys(ctx context.Context, categories repository.CategoryRepository, ids []uuid.UUID) ([]string, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		category, err := categories.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongKind) {
				continue
			}

			return nil, errors.Wrap(err, "load category")
		}
		keys = append(keys, category.Key)
	}

	return keys, nil
}

// newestRelease loads the newest release of a book. Every book has at
// least one release by construction.
func newestRelease(ctx context.Context, books repository.StoreBookRepository, book *entity.StoreBook) (*entity.StoreBookRelease, error) {
	if len(book.Releases) == 0 {
		return nil, errors.New("store book has no releases")
	}

	rel, err := books.FindRelease(ctx, book.Releases[len(book.Releases)-1])
	if err != nil {
		return nil, mapLoad(err, domainerrors.ErrStoreBookReleaseNotFound)
	}

	return rel, nil
}

// newestPublishedRelease walks the release list backwards to the newest
// published snapshot, or nil when the book was never published.
func newestPublishedRelease(ctx context.Context, books repository.StoreBookRepository, book *entity.StoreBook) (*entity.StoreBookRelease, error) {
	for i := len(book.Releases) - 1; i >= 0; i-- {
		rel, err := books.FindRelease(ctx, book.Releases[i])
		if err != nil {
			return nil, mapLoad(err, domainerrors.ErrStoreBookReleaseNotFound)
		}
		if rel.Status == entity.ReleasePublished {
			return rel, nil
		}
	}

	return nil, nil
}
