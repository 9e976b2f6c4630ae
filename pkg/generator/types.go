package generator

import "github.com/shouni/chart-image-kit/pkg/domain"

const (
	DefaultOutputDir   = "./charts"
	DefaultImageFormat = "png"
	DefaultWidth       = 300
	DefaultHeight      = 300
)

// Size は描画時のピクセル寸法です。
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// DefaultSizes は既定サイズと異なる寸法で描画するチャート種別です。
func DefaultSizes() map[domain.ChartType]Size {
	return map[domain.ChartType]Size{
		domain.ChartChoropleth: {Width: 700, Height: 500},
		domain.ChartTreemap:    {Width: 500, Height: 500},
	}
}

// DefaultQuestions は質問文が指定されなかった場合に使う種別ごとの質問です。
var DefaultQuestions = map[domain.ChartType]string{
	domain.ChartBar:         "Which category has the highest value?",
	domain.ChartPie:         "Which category has the largest proportion?",
	domain.ChartScatter:     "What is the x value of point that is the farthest from the origin?",
	domain.ChartLine:        "At which x-position is the value highest?",
	domain.ChartArea:        "At which x-position is the value highest?",
	domain.ChartBubble:      "Which point has the largest size?",
	domain.ChartChoropleth:  "Which state has the highest value?",
	domain.ChartTreemap:     "Which category occupies the largest area?",
	domain.ChartStackedBar:  "Which category has the highest total value?",
	domain.ChartStacked100:  "In which category does a segment occupy the largest proportion?",
	domain.ChartStackedArea: "Which category has the largest total value?",
	domain.ChartHistogram:   "Which bin has the most values?",
}

// 各種別でランダムに選ばれるスタイルの候補。
var (
	barSchemes     = []string{"category10", "dark2"}
	pieSchemes     = []string{"category10", "set2"}
	bubbleSchemes  = []string{"category10", "tableau10"}
	stackedSchemes = []string{"category10", "set2", "dark2"}
	scatterColors  = []string{"red", "blue", "teal", "orange"}
	pointShapes    = []string{"circle", "square", "triangle"}
	lineColors     = []string{"#1f77b4", "#ff7f0e", "#2ca02c"}
	areaColors     = []string{"blue", "teal", "orange"}
	orientations   = []string{"vertical", "horizontal"}
)

const (
	treemapScheme    = "pastel"
	choroplethScheme = "Blues"
)

// Stage は生成処理のどの段階で失敗したかを表します。
type Stage string

const (
	StageValidate   Stage = "validate"
	StageSynthesize Stage = "synthesize"
	StageRender     Stage = "render"
	StageNormalize  Stage = "normalize"
	StageMetadata   Stage = "metadata"
)
