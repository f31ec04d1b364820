package view

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/titancargo/courier-site/internal/core/domain"
)

// =============================================================================
// Image Slots
// =============================================================================

var (
	movingImages = regexp.MustCompile(`(?i)(moving|mover|relocation)`)
	cargoImages  = regexp.MustCompile(`(?i)(cargo|courier|same-day|medical)`)
)

// ImageRef is an image ready to be placed in a template.
type ImageRef struct {
	URL  string `json:"url"`
	Alt  string `json:"alt,omitempty"`
	Slot string `json:"slot,omitempty"`
}

func toRef(img domain.Image) ImageRef {
	return ImageRef{URL: img.ImageURL, Alt: img.AltText, Slot: img.SlotName}
}

// ServiceSlot returns the slot name of the card/banner image of the service
// at position i.
func ServiceSlot(i int) string {
	return "services-image-" + strconv.Itoa(i+1)
}

// FindSlot returns the first image bound to slot.
func FindSlot(images []domain.Image, slot string) (ImageRef, bool) {
	for _, img := range images {
		if img.SlotName == slot {
			return toRef(img), true
		}
	}
	return ImageRef{}, false
}

// FindSlotOrCategory returns the first image bound to slot or tagged with
// category.
func FindSlotOrCategory(images []domain.Image, slot, category string) (ImageRef, bool) {
	for _, img := range images {
		if img.SlotName == slot || img.Category == category {
			return toRef(img), true
		}
	}
	return ImageRef{}, false
}

// FilterSlotPrefix returns the images whose slot starts with prefix + "-",
// in upload order.
func FilterSlotPrefix(images []domain.Image, prefix string) []ImageRef {
	out := []ImageRef{}
	for _, img := range images {
		if strings.HasPrefix(img.SlotName, prefix+"-") {
			out = append(out, toRef(img))
		}
	}
	return out
}

// GalleryPrefix picks the image family for a service slug: moving services
// use "moving-service-*", cargo services "cargo-service-*". Moving wins
// when both match. Other services have no gallery.
func GalleryPrefix(slug string) (string, bool) {
	switch {
	case movingImages.MatchString(slug):
		return "moving-service", true
	case cargoImages.MatchString(slug):
		return "cargo-service", true
	default:
		return "", false
	}
}

func imagePtr(ref ImageRef, ok bool) *ImageRef {
	if !ok {
		return nil
	}
	return &ref
}
