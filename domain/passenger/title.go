package passenger

// Title groups
const (
	TitleMiss = "Miss"
	TitleMrs  = "Mrs"
	TitleRare = "Rare"
)

var titleAliases = map[string]string{
	"Mlle":     TitleMiss,
	"Ms":       TitleMiss,
	"Mme":      TitleMrs,
	"Lady":     TitleRare,
	"Countess": TitleRare,
	"Capt":     TitleRare,
	"Col":      TitleRare,
	"Don":      TitleRare,
	"Dr":       TitleRare,
	"Major":    TitleRare,
	"Rev":      TitleRare,
	"Sir":      TitleRare,
	"Jonkheer": TitleRare,
	"Dona":     TitleRare,
}

// NormalizeTitle folds honorific variants and rare titles into their group.
// Unlisted titles (Mr, Mrs, Miss, Master, ...) pass through unchanged.
func NormalizeTitle(title string) string {
	if group, ok := titleAliases[title]; ok {
		return group
	}
	return title
}
