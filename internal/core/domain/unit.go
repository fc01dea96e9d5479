package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Unit is the measurement unit of an ingredient quantity. Its numeric value is the
// server's enum ordinal.
type Unit int

const (
	UnitKilogram   Unit = 0
	UnitLiter      Unit = 1
	UnitPiece      Unit = 2
	UnitBox        Unit = 3
	UnitGram       Unit = 4
	UnitMilliliter Unit = 5
	UnitCan        Unit = 6
	UnitCup        Unit = 7
	UnitTablespoon Unit = 8
	UnitTeaspoon   Unit = 9
	UnitPackage    Unit = 10
	UnitBottle     Unit = 11

	UnitPound      Unit = 20
	UnitOunce      Unit = 21
	UnitFluidOunce Unit = 22
	UnitPint       Unit = 23
	UnitQuart      Unit = 24
	UnitGallon     Unit = 25

	UnitSlice Unit = 30
	UnitClove Unit = 31
	UnitHead  Unit = 32
	UnitBunch Unit = 33
	UnitStalk Unit = 34
	UnitWedge Unit = 35
	UnitSheet Unit = 36
	UnitPod   Unit = 37

	UnitBag    Unit = 40
	UnitJar    Unit = 41
	UnitTube   Unit = 42
	UnitCarton Unit = 43

	UnitPinch Unit = 50
	UnitDash  Unit = 51
	UnitDrop  Unit = 52

	UnitServing Unit = 60
	UnitPortion Unit = 61
	UnitOther   Unit = 99
)

type unitInfo struct {
	name    string
	aliases []string
	label   map[string]string
}

func lbl(en, vi string) map[string]string {
	return map[string]string{LocaleEnglish: en, LocaleVietnamese: vi}
}

var unitTable = map[Unit]unitInfo{
	UnitKilogram:   {"Kilogram", []string{"kilogram", "kg"}, lbl("kg", "kg")},
	UnitGram:       {"Gram", []string{"gram", "g"}, lbl("g", "g")},
	UnitPound:      {"Pound", []string{"pound", "lb"}, lbl("lb", "lb")},
	UnitOunce:      {"Ounce", []string{"ounce", "oz"}, lbl("oz", "oz")},
	UnitLiter:      {"Liter", []string{"liter", "l", "L"}, lbl("l", "l")},
	UnitMilliliter: {"Milliliter", []string{"milliliter", "ml", "mL"}, lbl("ml", "ml")},
	UnitCup:        {"Cup", []string{"cup"}, lbl("cup", "cốc")},
	UnitTablespoon: {"Tablespoon", []string{"tablespoon"}, lbl("tbsp", "muỗng canh")},
	UnitTeaspoon:   {"Teaspoon", []string{"teaspoon"}, lbl("tsp", "muỗng cà phê")},
	UnitFluidOunce: {"FluidOunce", []string{"fluidounce", "fl oz"}, lbl("fl oz", "fl oz")},
	UnitPint:       {"Pint", []string{"pint"}, lbl("pint", "pint")},
	UnitQuart:      {"Quart", []string{"quart"}, lbl("quart", "quart")},
	UnitGallon:     {"Gallon", []string{"gallon"}, lbl("gallon", "gallon")},
	UnitPiece:      {"Piece", []string{"piece"}, lbl("piece", "cái")},
	UnitSlice:      {"Slice", []string{"slice"}, lbl("slice", "lát")},
	UnitClove:      {"Clove", []string{"clove"}, lbl("clove", "tép")},
	UnitHead:       {"Head", []string{"head"}, lbl("head", "củ")},
	UnitBunch:      {"Bunch", []string{"bunch"}, lbl("bunch", "bó")},
	UnitStalk:      {"Stalk", []string{"stalk"}, lbl("stalk", "cọng")},
	UnitWedge:      {"Wedge", []string{"wedge"}, lbl("wedge", "miếng")},
	UnitSheet:      {"Sheet", []string{"sheet"}, lbl("sheet", "lá")},
	UnitPod:        {"Pod", []string{"pod"}, lbl("pod", "quả")},
	UnitBox:        {"Box", []string{"box"}, lbl("box", "hộp")},
	UnitCan:        {"Can", []string{"can"}, lbl("can", "lon")},
	UnitBottle:     {"Bottle", []string{"bottle"}, lbl("bottle", "chai")},
	UnitPackage:    {"Package", []string{"package"}, lbl("package", "gói")},
	UnitBag:        {"Bag", []string{"bag"}, lbl("bag", "túi")},
	UnitJar:        {"Jar", []string{"jar"}, lbl("jar", "lọ")},
	UnitTube:       {"Tube", []string{"tube"}, lbl("tube", "tuýp")},
	UnitCarton:     {"Carton", []string{"carton"}, lbl("carton", "thùng")},
	UnitPinch:      {"Pinch", []string{"pinch"}, lbl("pinch", "nhúm")},
	UnitDash:       {"Dash", []string{"dash"}, lbl("dash", "chút")},
	UnitDrop:       {"Drop", []string{"drop"}, lbl("drop", "giọt")},
	UnitServing:    {"Serving", []string{"serving"}, lbl("serving", "phần")},
	UnitPortion:    {"Portion", []string{"portion"}, lbl("portion", "suất")},
	UnitOther:      {"Other", []string{"other"}, lbl("other", "khác")},
}

// unitsByName is the reverse of unitTable over wire names and aliases.
var unitsByName = func() map[string]Unit {
	m := make(map[string]Unit, len(unitTable)*3)
	for u, info := range unitTable {
		m[info.name] = u
		for _, a := range info.aliases {
			m[a] = u
		}
	}
	return m
}()

// ParseUnit maps a wire name or alias to a Unit. Unknown values map to UnitOther
// with ok set to false.
func ParseUnit(s string) (Unit, bool) {
	if u, ok := unitsByName[s]; ok {
		return u, true
	}
	return UnitOther, false
}

// UnitFromInt maps a server ordinal to a Unit. Unknown ordinals map to UnitOther
// with ok set to false.
func UnitFromInt(v int) (Unit, bool) {
	if _, ok := unitTable[Unit(v)]; ok {
		return Unit(v), true
	}
	return UnitOther, false
}

// String returns the wire name of u.
func (u Unit) String() string {
	if info, ok := unitTable[u]; ok {
		return info.name
	}
	return unitTable[UnitOther].name
}

// Label returns the short display label of u for the given locale.
func (u Unit) Label(locale string) string {
	info, ok := unitTable[u]
	if !ok {
		info = unitTable[UnitOther]
	}
	if l, ok := info.label[locale]; ok {
		return l
	}
	return info.label[LocaleEnglish]
}

// MarshalJSON writes the wire name.
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON accepts a wire name, an alias or an ordinal. Unknown values decode
// to UnitOther.
func (u *Unit) UnmarshalJSON(data []byte) error {
	*u, _ = decodeUnit(data)
	return nil
}

// decodeUnit returns the unit for a raw JSON value and the raw text when it was not recognised.
func decodeUnit(data []byte) (Unit, string) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return UnitOther, ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u, ok := ParseUnit(strings.TrimSpace(s))
		if !ok {
			return u, s
		}
		return u, ""
	}
	if n, err := strconv.Atoi(string(data)); err == nil {
		u, ok := UnitFromInt(n)
		if !ok {
			return u, string(data)
		}
		return u, ""
	}
	return UnitOther, string(data)
}
