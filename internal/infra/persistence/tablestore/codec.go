// Package tablestore implements the domain repositories on top of the
// external table-object store. All coercion between typed entities and
// the store's flat string property maps is confined to the codecs in this
// file; whatever a codec writes it can parse back identically.
package tablestore

import (
	"strconv"
	"strings"
	"time"

	"pocketlib/internal/domain/entity"
	"pocketlib/internal/errors"

	"github.com/google/uuid"
)

// Ordered uuid lists are stored as comma-delimited strings.
const listSeparator = ","

func joinIDs(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}

	return strings.Join(parts, listSeparator)
}

func splitIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, listSeparator)
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed id list entry %q", part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func optionalID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}

	return id
}

// put always writes the key: an empty value instructs the store to clear
// the property, which keeps encode/decode symmetric across updates.
func put(props map[string]string, key, value string) {
	props[key] = value
}

func putID(props map[string]string, key string, id uuid.UUID) {
	if id == uuid.Nil {
		props[key] = ""

		return
	}
	props[key] = id.String()
}

func encodeAuthor(a *entity.Author) map[string]string {
	props := map[string]string{
		"first_name": a.FirstName,
		"last_name":  a.LastName,
	}
	put(props, "user", a.UserID)
	putID(props, "publisher", a.PublisherID)
	put(props, "website_url", a.WebsiteURL)
	put(props, "bios", joinIDs(a.Bios))
	put(props, "collections", joinIDs(a.Collections))
	put(props, "series", joinIDs(a.Series))
	encodeImageRef(props, "profile_image", a.ProfileImage)

	return props
}

func decodeAuthor(id uuid.UUID, props map[string]string) (*entity.Author, error) {
	bios, err := splitIDs(props["bios"])
	if err != nil {
		return nil, err
	}
	collections, err := splitIDs(props["collections"])
	if err != nil {
		return nil, err
	}
	series, err := splitIDs(props["series"])
	if err != nil {
		return nil, err
	}

	return &entity.Author{
		UUID:         id,
		UserID:       props["user"],
		PublisherID:  optionalID(props["publisher"]),
		FirstName:    props["first_name"],
		LastName:     props["last_name"],
		WebsiteURL:   props["website_url"],
		Bios:         bios,
		Collections:  collections,
		Series:       series,
		ProfileImage: decodeImageRef(props, "profile_image"),
	}, nil
}

func encodePublisher(p *entity.Publisher) map[string]string {
	props := map[string]string{
		"name": p.Name,
	}
	put(props, "user", p.UserID)
	put(props, "description", p.Description)
	put(props, "website_url", p.WebsiteURL)
	put(props, "authors", joinIDs(p.Authors))
	encodeImageRef(props, "logo", p.Logo)

	return props
}

func decodePublisher(id uuid.UUID, props map[string]string) (*entity.Publisher, error) {
	authors, err := splitIDs(props["authors"])
	if err != nil {
		return nil, err
	}

	return &entity.Publisher{
		UUID:        id,
		UserID:      props["user"],
		Name:        props["name"],
		Description: props["description"],
		WebsiteURL:  props["website_url"],
		Authors:     authors,
		Logo:        decodeImageRef(props, "logo"),
	}, nil
}

func encodeCollection(c *entity.StoreBookCollection) map[string]string {
	props := map[string]string{
		"author": c.AuthorID.String(),
	}
	put(props, "names", joinIDs(c.Names))
	put(props, "books", joinIDs(c.Books))

	return props
}

func decodeCollection(id uuid.UUID, props map[string]string) (*entity.StoreBookCollection, error) {
	names, err := splitIDs(props["names"])
	if err != nil {
		return nil, err
	}
	books, err := splitIDs(props["books"])
	if err != nil {
		return nil, err
	}

	return &entity.StoreBookCollection{
		UUID:     id,
		AuthorID: optionalID(props["author"]),
		Names:    names,
		Books:    books,
	}, nil
}

func encodeStoreBook(b *entity.StoreBook) map[string]string {
	props := map[string]string{
		"collection": b.CollectionID.String(),
		"language":   b.Language,
		"status":     string(b.Status),
	}
	put(props, "releases", joinIDs(b.Releases))
	if !b.CreatedAt.IsZero() {
		props["created_at"] = b.CreatedAt.UTC().Format(time.RFC3339)
	}

	return props
}

func decodeStoreBook(id uuid.UUID, props map[string]string) (*entity.StoreBook, error) {
	releases, err := splitIDs(props["releases"])
	if err != nil {
		return nil, err
	}
	var createdAt time.Time
	if raw := props["created_at"]; raw != "" {
		createdAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.Wrap(err, "malformed created_at")
		}
	}

	return &entity.StoreBook{
		UUID:         id,
		CollectionID: optionalID(props["collection"]),
		Language:     props["language"],
		Status:       entity.StoreBookStatus(props["status"]),
		Releases:     releases,
		CreatedAt:    createdAt,
	}, nil
}

func encodeRelease(r *entity.StoreBookRelease) map[string]string {
	props := map[string]string{
		"store_book": r.StoreBookID.String(),
		"status":     string(r.Status),
		"title":      r.Title,
		"price":      strconv.Itoa(r.Price),
	}
	put(props, "release_name", r.ReleaseName)
	put(props, "release_notes", r.ReleaseNotes)
	if r.PublishedAt != nil {
		props["published_at"] = r.PublishedAt.UTC().Format(time.RFC3339)
	}
	put(props, "description", r.Description)
	put(props, "isbn", r.ISBN)
	put(props, "categories", joinIDs(r.Categories))
	encodeImageRef(props, "cover", r.Cover)
	putID(props, "file_item", r.File.ItemID)
	put(props, "file_name", r.File.FileName)

	return props
}

func decodeRelease(id uuid.UUID, props map[string]string) (*entity.StoreBookRelease, error) {
	categories, err := splitIDs(props["categories"])
	if err != nil {
		return nil, err
	}

	price := 0
	if raw := props["price"]; raw != "" {
		price, err = strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, "malformed price")
		}
	}

	var publishedAt *time.Time
	if raw := props["published_at"]; raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.Wrap(err, "malformed published_at")
		}
		publishedAt = &parsed
	}

	return &entity.StoreBookRelease{
		UUID:         id,
		StoreBookID:  optionalID(props["store_book"]),
		Status:       entity.ReleaseStatus(props["status"]),
		ReleaseName:  props["release_name"],
		ReleaseNotes: props["release_notes"],
		PublishedAt:  publishedAt,
		Title:        props["title"],
		Description:  props["description"],
		Price:        price,
		ISBN:         props["isbn"],
		Categories:   categories,
		Cover:        decodeImageRef(props, "cover"),
		File: entity.FileRef{
			ItemID:   optionalID(props["file_item"]),
			FileName: props["file_name"],
		},
	}, nil
}

func encodeSeries(s *entity.StoreBookSeries) map[string]string {
	props := map[string]string{
		"author": s.AuthorID.String(),
	}
	put(props, "names", joinIDs(s.Names))
	put(props, "collections", joinIDs(s.Collections))

	return props
}

func decodeSeries(id uuid.UUID, props map[string]string) (*entity.StoreBookSeries, error) {
	names, err := splitIDs(props["names"])
	if err != nil {
		return nil, err
	}
	collections, err := splitIDs(props["collections"])
	if err != nil {
		return nil, err
	}

	return &entity.StoreBookSeries{
		UUID:        id,
		AuthorID:    optionalID(props["author"]),
		Names:       names,
		Collections: collections,
	}, nil
}

func encodeCategory(c *entity.Category) map[string]string {
	props := map[string]string{
		"key": c.Key,
	}
	put(props, "names", joinIDs(c.Names))

	return props
}

func decodeCategory(id uuid.UUID, props map[string]string) (*entity.Category, error) {
	names, err := splitIDs(props["names"])
	if err != nil {
		return nil, err
	}

	return &entity.Category{
		UUID:  id,
		Key:   props["key"],
		Names: names,
	}, nil
}

func encodeImageRef(props map[string]string, prefix string, ref entity.ImageRef) {
	putID(props, prefix+"_item", ref.ItemID)
	put(props, prefix+"_blurhash", ref.Blurhash)
	put(props, prefix+"_aspect_ratio", ref.AspectRatio)
}

func decodeImageRef(props map[string]string, prefix string) entity.ImageRef {
	return entity.ImageRef{
		ItemID:      optionalID(props[prefix+"_item"]),
		Blurhash:    props[prefix+"_blurhash"],
		AspectRatio: props[prefix+"_aspect_ratio"],
	}
}
