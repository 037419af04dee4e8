// Package passenger fixes the column vocabulary of the passenger table.
package passenger

// Raw columns of the input file
const (
	ColPassengerID = "PassengerId"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColCabin       = "Cabin"
	ColEmbarked    = "Embarked"
)

// Derived columns
const (
	ColTitle      = "Title"
	ColFamilySize = "FamilySize"
	ColIsAlone    = "IsAlone"
	ColAgeBin     = "AgeBin"
	ColFareBin    = "FareBin"
)

// LabelColumn is excluded from the feature matrix
const LabelColumn = ColSurvived

// DefaultEmbarked fills Embarked when the column's mode is tied
const DefaultEmbarked = "S"

// QuantileBins is the requested bucket count for AgeBin and FareBin
const QuantileBins = 5

// OutlierPercentile is the upper clip point for Age and Fare
const OutlierPercentile = 99.0

// RawColumns lists the input header in file order
var RawColumns = []string{
	ColPassengerID, ColSurvived, ColPclass, ColName, ColSex, ColAge,
	ColSibSp, ColParch, ColTicket, ColFare, ColCabin, ColEmbarked,
}

// AgeGroupKeys are the columns Age medians are grouped by
var AgeGroupKeys = []string{ColPclass, ColSex}

// CategoricalColumns are one-hot encoded, in this order
var CategoricalColumns = []string{ColSex, ColEmbarked, ColPclass, ColTitle}

// IdentifierColumns are dropped once features are extracted
var IdentifierColumns = []string{ColName, ColTicket, ColPassengerID}

// ScaledColumns are capped and min-max normalized
var ScaledColumns = []string{ColFare, ColAge}
