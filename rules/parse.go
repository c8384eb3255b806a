package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/solvitaire/card"
)

// document mirrors the rule file layout. Documents are decoded over each
// other (defaults, then a preset, then a user file); keys absent from a
// later document keep the earlier value.
type document struct {
	Tableau     tableauDoc     `yaml:"tableau piles"`
	MaxRank     int            `yaml:"max rank"`
	TwoDecks    bool           `yaml:"two decks"`
	Hole        holeDoc        `yaml:"hole"`
	Foundations foundationsDoc `yaml:"foundations"`
	Cells       cellsDoc       `yaml:"cells"`
	Stock       stockDoc       `yaml:"stock"`
	Reserve     reserveDoc     `yaml:"reserve"`
	Sequences   sequencesDoc   `yaml:"sequences"`
	Accordion   accordionDoc   `yaml:"accordion"`
}

type tableauDoc struct {
	Count            int    `yaml:"count"`
	BuildPolicy      string `yaml:"build policy"`
	SpacesPolicy     string `yaml:"spaces policy"`
	DiagonalDeal     bool   `yaml:"diagonal deal"`
	MoveBuiltGroup   string `yaml:"move built group"`
	BuiltGroupPolicy string `yaml:"move built group policy"`
	FaceUp           string `yaml:"face up cards"`
}

type holeDoc struct {
	Present    bool   `yaml:"present"`
	BaseCard   string `yaml:"base card"`
	BuildLoops bool   `yaml:"build loops"`
}

type foundationsDoc struct {
	Present           bool   `yaml:"present"`
	InitialCards      string `yaml:"initial cards"`
	BaseCard          string `yaml:"base card"`
	Removable         bool   `yaml:"removable"`
	OnlyCompletePiles bool   `yaml:"only complete pile moves"`
}

type cellsDoc struct {
	Count     int `yaml:"count"`
	PreFilled int `yaml:"pre-filled"`
}

type stockDoc struct {
	Size      int    `yaml:"size"`
	DealType  string `yaml:"deal type"`
	DealCount int    `yaml:"deal count"`
	Redeal    bool   `yaml:"redeal"`
}

type reserveDoc struct {
	Size    int  `yaml:"size"`
	Stacked bool `yaml:"stacked"`
}

type sequencesDoc struct {
	Count       int    `yaml:"count"`
	Direction   string `yaml:"direction"`
	BuildPolicy string `yaml:"build policy"`
	FixedSuit   bool   `yaml:"fixed suit"`
}

type accordionDoc struct {
	Size          int      `yaml:"size"`
	Moves         []string `yaml:"moves"`
	BuildPolicies []string `yaml:"build policies"`
}

var buildPolicyNames = map[string]BuildPolicy{
	"any-suit":  AnySuit,
	"red-black": RedBlack,
	"same-suit": SameSuit,
	"no-build":  NoBuild,
}

var spacesPolicyNames = map[string]SpacesPolicy{
	"any":                     SpacesAny,
	"no-build":                SpacesNoBuild,
	"kings":                   SpacesKings,
	"auto-reserve-then-waste": SpacesAutoReserveThenWaste,
	"auto-reserve-then-any":   SpacesAutoReserveThenAny,
	"auto-waste-then-stock":   SpacesAutoWasteThenStock,
}

var builtGroupNames = map[string]BuiltGroupType{
	"no":            BuiltGroupNo,
	"yes":           BuiltGroupYes,
	"maximal-group": BuiltGroupMaximal,
	"whole-pile":    BuiltGroupWholePile,
	// Partial groups may always be moved when the card above is buildable,
	// which is what "yes" generates.
	"partial-if-card-above-buildable": BuiltGroupYes,
}

var foundationsInitNames = map[string]FoundationsInit{
	"none": InitNone,
	"one":  InitOne,
	"all":  InitAll,
}

var dealTypeNames = map[string]StockDealType{
	"waste":         DealWaste,
	"tableau-piles": DealTableauPiles,
	"hole":          DealHole,
}

var faceUpNames = map[string]FaceUpPolicy{
	"all":       FaceUpAll,
	"top":       FaceUpTop,
	"top-cards": FaceUpTop,
}

var directionNames = map[string]Direction{
	"l": Left, "left": Left,
	"r": Right, "right": Right,
	"b": Both, "both": Both,
}

var accordionPolicyNames = map[string]AccordionPolicy{
	"same-rank": AccordionSameRank,
	"same-suit": AccordionSameSuit,
	"red-black": AccordionRedBlack,
	"any-suit":  AccordionAnySuit,
}

// normalise lowercases an enum value and accepts spaces or underscores in
// place of dashes.
func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

func lookup[T any](key, value string, names map[string]T) (T, error) {
	v, ok := names[normalise(value)]
	if !ok {
		var zero T
		valid := lo.Keys(names)
		slices.Sort(valid)
		return zero, invalid("%s: unknown value %q (one of %s)", key, value, strings.Join(valid, ", "))
	}
	return v, nil
}

func (d *document) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(d)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return nil
}

func (d *document) rules() (Rules, error) {
	r := Blank()
	var err error

	r.TableauPiles = d.Tableau.Count
	r.DiagonalDeal = d.Tableau.DiagonalDeal
	if r.BuildPolicy, err = lookup("tableau piles.build policy", d.Tableau.BuildPolicy, buildPolicyNames); err != nil {
		return r, err
	}
	if r.SpacesPolicy, err = lookup("tableau piles.spaces policy", d.Tableau.SpacesPolicy, spacesPolicyNames); err != nil {
		return r, err
	}
	if r.MoveBuiltGroup, err = lookup("tableau piles.move built group", d.Tableau.MoveBuiltGroup, builtGroupNames); err != nil {
		return r, err
	}
	if normalise(d.Tableau.BuiltGroupPolicy) == "same-as-build" {
		r.BuiltGroupPolicy = r.BuildPolicy
	} else if r.BuiltGroupPolicy, err = lookup("tableau piles.move built group policy", d.Tableau.BuiltGroupPolicy, buildPolicyNames); err != nil {
		return r, err
	}
	if r.FaceUp, err = lookup("tableau piles.face up cards", d.Tableau.FaceUp, faceUpNames); err != nil {
		return r, err
	}

	r.MaxRank = d.MaxRank
	r.TwoDecks = d.TwoDecks

	r.Hole = d.Hole.Present
	r.HoleBuildLoops = d.Hole.BuildLoops
	if normalise(d.Hole.BaseCard) == "random" {
		r.HoleBase = card.Card{}
	} else if r.HoleBase, err = card.Parse(d.Hole.BaseCard); err != nil {
		return r, invalid("hole.base card: %v", err)
	}

	r.Foundations = d.Foundations.Present
	r.FoundationsRemovable = d.Foundations.Removable
	r.FoundationsOnlyCompletePiles = d.Foundations.OnlyCompletePiles
	if r.FoundationsInitCards, err = lookup("foundations.initial cards", d.Foundations.InitialCards, foundationsInitNames); err != nil {
		return r, err
	}
	if r.FoundationsBase, err = parseBaseRank(d.Foundations.BaseCard); err != nil {
		return r, err
	}

	r.Cells = d.Cells.Count
	r.CellsPreFilled = d.Cells.PreFilled

	r.StockSize = d.Stock.Size
	r.StockDealCount = d.Stock.DealCount
	r.StockRedeal = d.Stock.Redeal
	if r.StockDealType, err = lookup("stock.deal type", d.Stock.DealType, dealTypeNames); err != nil {
		return r, err
	}

	r.ReserveSize = d.Reserve.Size
	r.ReserveStacked = d.Reserve.Stacked

	r.SequenceCount = d.Sequences.Count
	r.SequenceFixedSuit = d.Sequences.FixedSuit
	if r.SequenceDirection, err = lookup("sequences.direction", d.Sequences.Direction, directionNames); err != nil {
		return r, err
	}
	if r.SequenceBuildPolicy, err = lookup("sequences.build policy", d.Sequences.BuildPolicy, buildPolicyNames); err != nil {
		return r, err
	}

	r.AccordionSize = d.Accordion.Size
	for _, m := range d.Accordion.Moves {
		am, err := parseAccordionMove(m)
		if err != nil {
			return r, err
		}
		r.AccordionMoves = append(r.AccordionMoves, am)
	}
	for _, p := range d.Accordion.BuildPolicies {
		ap, err := lookup("accordion.build policies", p, accordionPolicyNames)
		if err != nil {
			return r, err
		}
		r.AccordionPolicies = append(r.AccordionPolicies, ap)
	}
	return r, r.Validate()
}

func parseBaseRank(s string) (int, error) {
	switch v := normalise(s); v {
	case "random":
		return RandomBase, nil
	case "a":
		return 1, nil
	case "j":
		return 11, nil
	case "q":
		return 12, nil
	case "k":
		return 13, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, invalid("foundations.base card: bad rank %q", s)
		}
		return n, nil
	}
}

// parseAccordionMove reads a move such as "L1" or "R3".
func parseAccordionMove(s string) (AccordionMove, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return AccordionMove{}, invalid("accordion.moves: bad move %q", s)
	}
	dir, err := lookup("accordion.moves", s[:1], directionNames)
	if err != nil {
		return AccordionMove{}, err
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return AccordionMove{}, invalid("accordion.moves: bad distance in %q", s)
	}
	return AccordionMove{Direction: dir, Distance: n}, nil
}

// Parse reads a rule document. YAML and JSON are both accepted. Any key left
// out takes its value from the "default" preset.
func Parse(data []byte) (Rules, error) {
	d, err := defaultDocument()
	if err != nil {
		return Rules{}, err
	}
	if err := d.decode(data); err != nil {
		return Rules{}, err
	}
	return d.rules()
}

func (b BuildPolicy) String() string     { return nameOf(b, buildPolicyNames) }
func (s SpacesPolicy) String() string    { return nameOf(s, spacesPolicyNames) }
func (f FoundationsInit) String() string { return nameOf(f, foundationsInitNames) }
func (s StockDealType) String() string   { return nameOf(s, dealTypeNames) }
func (f FaceUpPolicy) String() string    { return nameOf(f, faceUpNames) }
func (a AccordionPolicy) String() string { return nameOf(a, accordionPolicyNames) }

func (b BuiltGroupType) String() string { return nameOf(b, builtGroupNames) }

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "both"
}

func (m AccordionMove) String() string {
	return strings.ToUpper(m.Direction.String()[:1]) + strconv.Itoa(m.Distance)
}

// nameOf returns the shortest name mapping to v, so aliases never win over
// the canonical spelling.
func nameOf[T comparable](v T, names map[string]T) string {
	best := ""
	for k, n := range names {
		if n != v {
			continue
		}
		if best == "" || len(k) < len(best) || (len(k) == len(best) && k < best) {
			best = k
		}
	}
	if best == "" {
		return "unknown"
	}
	return best
}
