package storage

// AssetClass names a category of uploaded binary content with its own
// validation and destination policy.
type AssetClass string

const (
	// ClassAvatar is a user profile picture.
	ClassAvatar AssetClass = "avatar"
	// ClassEventImage is an event banner or gallery image.
	ClassEventImage AssetClass = "event-image"
	// ClassPaymentScreenshot is a payment proof screenshot.
	ClassPaymentScreenshot AssetClass = "payment-screenshot"
	// ClassDocument is a document artifact such as the event rulebook.
	ClassDocument AssetClass = "document"
)

const (
	megabyte = 1 << 20

	maxAvatarBytes     = 5 * megabyte
	maxEventImageBytes = 10 * megabyte
	maxPaymentBytes    = 5 * megabyte
	maxDocumentBytes   = 20 * megabyte
)

// Policy is the static per-class upload policy. Policies are configuration,
// not persisted entities.
type Policy struct {
	// Prefix of generated destination names.
	Prefix string
	// Folder below the backend root (local subdirectory or cloud folder).
	Folder string
	// MaxBytes is the size ceiling. A file of exactly MaxBytes is accepted.
	MaxBytes int64
	// Extensions is the lowercase extension allow-list, without the dot.
	Extensions []string
	// MIMETypes is the declared content-type allow-list.
	MIMETypes []string
	// Transform is an opaque server-side transform descriptor applied by
	// the cloud backend on ingest. Passed through, never interpreted here.
	Transform map[string]string
}

var policies = map[AssetClass]Policy{
	ClassAvatar: {
		Prefix:     "avatar",
		Folder:     "avatars",
		MaxBytes:   maxAvatarBytes,
		Extensions: []string{"jpg", "jpeg", "png", "webp"},
		MIMETypes:  []string{"image/jpeg", "image/png", "image/webp"},
		Transform:  map[string]string{"width": "500", "height": "500", "crop": "fill", "gravity": "face"},
	},
	ClassEventImage: {
		Prefix:     "event",
		Folder:     "events",
		MaxBytes:   maxEventImageBytes,
		Extensions: []string{"jpg", "jpeg", "png", "gif", "webp"},
		MIMETypes:  []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		Transform:  map[string]string{"width": "1200", "height": "800", "crop": "limit"},
	},
	ClassPaymentScreenshot: {
		Prefix:     "payment",
		Folder:     "payments",
		MaxBytes:   maxPaymentBytes,
		Extensions: []string{"jpg", "jpeg", "png", "webp"},
		MIMETypes:  []string{"image/jpeg", "image/png", "image/webp"},
		Transform:  map[string]string{"width": "1000", "height": "1000", "crop": "limit"},
	},
	ClassDocument: {
		Prefix:     "document",
		Folder:     "documents",
		MaxBytes:   maxDocumentBytes,
		Extensions: []string{"pdf"},
		MIMETypes:  []string{"application/pdf"},
	},
}

// PolicyFor returns the policy of an asset class.
func PolicyFor(class AssetClass) (Policy, error) {
	p, ok := policies[class]
	if !ok {
		return Policy{}, ErrUnknownAssetClass
	}

	return p, nil
}

// Classes returns all known asset classes.
func Classes() []AssetClass {
	return []AssetClass{ClassAvatar, ClassEventImage, ClassPaymentScreenshot, ClassDocument}
}
