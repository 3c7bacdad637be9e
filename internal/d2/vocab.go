package d2

import "github.com/lox/d2wiki/internal/vocab"

type Element int

const (
	ElementNone Element = iota
	ElementSolar
	ElementArc
	ElementVoid
	ElementStasis
	ElementStrand
)

var Elements = vocab.New("element",
	vocab.E(ElementNone, "없음"),
	vocab.E(ElementSolar, "태양"),
	vocab.E(ElementArc, "전기"),
	vocab.E(ElementVoid, "공허"),
	vocab.E(ElementStasis, "시공"),
	vocab.E(ElementStrand, "초월"),
)

func (e Element) String() string { return Elements.Label(e) }

type WeaponAmmo int

const (
	AmmoPrimary WeaponAmmo = iota
	AmmoSpecial
	AmmoHeavy
)

var WeaponAmmos = vocab.New("weapon ammo",
	vocab.E(AmmoPrimary, "주 무기"),
	vocab.E(AmmoSpecial, "특수"),
	vocab.E(AmmoHeavy, "중화기"),
)

func (a WeaponAmmo) String() string { return WeaponAmmos.Label(a) }

type WeaponSlot int

const (
	SlotKinetic WeaponSlot = iota
	SlotEnergy
	SlotPower
)

var WeaponSlots = vocab.New("weapon slot",
	vocab.E(SlotKinetic, "물리/시공"),
	vocab.E(SlotEnergy, "에너지"),
	vocab.E(SlotPower, "중화기"),
)

func (s WeaponSlot) String() string { return WeaponSlots.Label(s) }

type WeaponCategory int

const (
	AutoRifle WeaponCategory = iota
	HandCannon
	PulseRifle
	ScoutRifle
	Sidearm
	SubmachineGun
	Shotgun
	SlugShotgun
	SniperRifle
	FusionRifle
	LinearFusionRifle
	RocketLauncher
	Bow
	SpecialGrenadeLauncher
	HeavyGrenadeLauncher
	TraceRifle
	Sword
	MachineGun
)

var WeaponCategories = vocab.New("weapon category",
	vocab.E(AutoRifle, "자동 소총"),
	vocab.E(HandCannon, "핸드 캐논"),
	vocab.E(PulseRifle, "파동 소총"),
	vocab.E(ScoutRifle, "정찰 소총"),
	vocab.E(Sidearm, "보조 무기"),
	vocab.E(SubmachineGun, "기관단총"),
	vocab.E(Shotgun, "산탄총"),
	vocab.E(SlugShotgun, "정밀 납탄 산탄총"),
	vocab.E(SniperRifle, "저격 소총"),
	vocab.E(FusionRifle, "융합 소총"),
	vocab.E(LinearFusionRifle, "선형 융합 소총"),
	vocab.E(RocketLauncher, "로켓 발사기"),
	vocab.E(Bow, "활"),
	vocab.E(SpecialGrenadeLauncher, "특수 탄약 유탄 발사기"),
	vocab.E(HeavyGrenadeLauncher, "중화기 탄약 유탄 발사기"),
	vocab.E(TraceRifle, "추적 소총"),
	vocab.E(Sword, "검"),
	vocab.E(MachineGun, "기관총"),
)

func (c WeaponCategory) String() string { return WeaponCategories.Label(c) }

type ArmorCategory int

const (
	ArmorHead ArmorCategory = iota
	ArmorArm
	ArmorChest
	ArmorLeg
	ArmorClassItem
)

var ArmorCategories = vocab.New("armor category",
	vocab.E(ArmorHead, "머리"),
	vocab.E(ArmorArm, "팔"),
	vocab.E(ArmorChest, "가슴"),
	vocab.E(ArmorLeg, "다리"),
	vocab.E(ArmorClassItem, "직업"),
)

func (c ArmorCategory) String() string { return ArmorCategories.Label(c) }

type GuardianClass int

const (
	Hunter GuardianClass = iota
	Warlock
	Titan
)

var GuardianClasses = vocab.New("guardian class",
	vocab.E(Hunter, "헌터"),
	vocab.E(Warlock, "워록"),
	vocab.E(Titan, "타이탄"),
)

func (c GuardianClass) String() string { return GuardianClasses.Label(c) }

type ModType int

const (
	ModGenerate ModType = iota
	ModUse
	ModAssist
	ModRelic
)

var ModTypes = vocab.New("mod type",
	vocab.E(ModGenerate, "생성"),
	vocab.E(ModUse, "사용"),
	vocab.E(ModAssist, "보조"),
	vocab.E(ModRelic, "유물"),
)

func (m ModType) String() string { return ModTypes.Label(m) }

// PerkColumn is a weapon perk column as chosen in commands. Several columns
// share one collection.
type PerkColumn string

const (
	ColumnBarrel   PerkColumn = "barrel"
	ColumnScope    PerkColumn = "scope"
	ColumnSight    PerkColumn = "sight"
	ColumnMagazine PerkColumn = "magazine"
	ColumnAmmo     PerkColumn = "ammo"
	ColumnTrait    PerkColumn = "trait"
)

var PerkColumns = vocab.New("perk column",
	vocab.E(ColumnBarrel, "barrel"),
	vocab.E(ColumnScope, "scope"),
	vocab.E(ColumnSight, "sight"),
	vocab.E(ColumnMagazine, "magazine"),
	vocab.E(ColumnAmmo, "ammo"),
	vocab.E(ColumnTrait, "trait"),
)

var perkColumnNames = map[PerkColumn]string{
	ColumnBarrel:   "총열",
	ColumnScope:    "조준경",
	ColumnSight:    "가늠쇠",
	ColumnMagazine: "탄창",
	ColumnAmmo:     "탄약",
	ColumnTrait:    "특성",
}

// DisplayName is the localized column name shown in command choices.
func (c PerkColumn) DisplayName() string {
	if name, ok := perkColumnNames[c]; ok {
		return name
	}
	return string(c)
}

// PerkRow identifies one of the perk collections.
type PerkRow int

const (
	PerkRow1 PerkRow = iota + 1
	PerkRow2
	PerkRow34
)

// Row maps the column to the collection that holds its perks.
func (c PerkColumn) Row() PerkRow {
	switch c {
	case ColumnMagazine, ColumnAmmo:
		return PerkRow2
	case ColumnTrait:
		return PerkRow34
	default:
		return PerkRow1
	}
}
