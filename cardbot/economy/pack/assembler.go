package pack

import (
	"context"
	"fmt"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
)

// PackCard is one pulled card and the finish it was pulled in.
type PackCard struct {
	Card  *models.Card
	Foil  bool
	Chase bool
}

// Pack holds the regular cards in slot order followed by the chase card.
type Pack struct {
	Cards []PackCard
}

func (p *Pack) Regular() []PackCard {
	if len(p.Cards) == 0 {
		return nil
	}
	return p.Cards[:len(p.Cards)-1]
}

// Chase returns the zero PackCard for an empty pack.
func (p *Pack) Chase() PackCard {
	if len(p.Cards) == 0 {
		return PackCard{}
	}
	return p.Cards[len(p.Cards)-1]
}

type Assembler struct {
	catalog interfaces.CatalogReader
	src     Source
	cfg     Config
}

func NewAssembler(catalog interfaces.CatalogReader, src Source, cfg Config) *Assembler {
	return &Assembler{catalog: catalog, src: src, cfg: cfg}
}

// Open draws a full pack. It has no side effects. A rarity without cards is
// redrawn; economy.ErrEmptyCatalog is returned once every drawable rarity of
// a slot turned out empty.
func (a *Assembler) Open(ctx context.Context) (*Pack, error) {
	lookup := catalogLookup{catalog: a.catalog, cache: make(map[models.Rarity][]*models.Card)}
	cards := make([]PackCard, 0, PackSize)

	for i := 0; i < RegularSlots; i++ {
		card, err := a.drawSlot(ctx, &lookup, a.cfg.Regular)
		if err != nil {
			return nil, fmt.Errorf("regular slot: %w", err)
		}
		cards = append(cards, PackCard{Card: card, Foil: a.cfg.Regular.Foil})
	}

	card, err := a.drawSlot(ctx, &lookup, a.cfg.Chase)
	if err != nil {
		return nil, fmt.Errorf("chase slot: %w", err)
	}
	cards = append(cards, PackCard{Card: card, Foil: a.cfg.Chase.Foil, Chase: true})

	return &Pack{Cards: cards}, nil
}

func (a *Assembler) drawSlot(ctx context.Context, lookup *catalogLookup, slot SlotConfig) (*models.Card, error) {
	drawable := slot.Rarity.Drawable()
	empty := make(map[string]struct{}, len(drawable))

	for len(empty) < len(drawable) {
		label := Draw(slot.Rarity, a.src)
		if _, ok := empty[label]; ok {
			continue
		}
		cards, err := lookup.cards(ctx, models.Rarity(label))
		if err != nil {
			return nil, err
		}
		if len(cards) == 0 {
			empty[label] = struct{}{}
			continue
		}
		return cards[a.src.Intn(len(cards))], nil
	}
	return nil, economy.ErrEmptyCatalog
}

// catalogLookup memoizes rarity lookups for one Open call.
type catalogLookup struct {
	catalog interfaces.CatalogReader
	cache   map[models.Rarity][]*models.Card
}

func (l *catalogLookup) cards(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	if cards, ok := l.cache[rarity]; ok {
		return cards, nil
	}
	cards, err := l.catalog.FindCardsByRarity(ctx, rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s cards: %w", rarity, err)
	}
	l.cache[rarity] = cards
	return cards, nil
}
