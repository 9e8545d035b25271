package carousel

// ImageKind identifies which image on the carousel failed to load.
type ImageKind string

const (
	KindItem       ImageKind = "item"
	KindLeftArrow  ImageKind = "left-arrow"
	KindRightArrow ImageKind = "right-arrow"
)

// ImageSlot is one image element. Index is only meaningful for items.
type ImageSlot struct {
	Kind  ImageKind
	Index int
}

var (
	LeftArrow  = ImageSlot{Kind: KindLeftArrow}
	RightArrow = ImageSlot{Kind: KindRightArrow}
)

// ItemImage is the slot of slide i's picture.
func ItemImage(i int) ImageSlot {
	return ImageSlot{Kind: KindItem, Index: i}
}

// ImageFailed records a load failure and returns the fallback to show. The
// fallback is handed out once per slot; later failures of the same slot
// return ok=false so a broken fallback never loops.
func (c *Carousel) ImageFailed(slot ImageSlot) (fallback string, ok bool) {
	fallback = fallbackFor(slot.Kind)
	if fallback == "" {
		return "", false
	}
	if slot.Kind != KindItem {
		slot.Index = 0
	} else if slot.Index < 0 || slot.Index >= len(c.items) {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failed[slot] {
		return "", false
	}
	c.failed[slot] = true
	return fallback, true
}

// imageLocked must be called with c.mu held.
func (c *Carousel) imageLocked(slot ImageSlot, src string) string {
	if c.failed[slot] {
		return fallbackFor(slot.Kind)
	}
	return src
}

func fallbackFor(k ImageKind) string {
	switch k {
	case KindItem:
		return ItemFallbackImage
	case KindLeftArrow:
		return LeftArrowFallbackImage
	case KindRightArrow:
		return RightArrowFallbackImage
	default:
		return ""
	}
}
