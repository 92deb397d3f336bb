package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gazebo-web/model-gallery/bundles/category"
	"github.com/satori/go.uuid"
)

// Types are the kinds of robots the generated catalog contains.
var Types = []string{"人形机器人", "机械臂", "机械狗", "工业机器人", "服务机器人", "医疗机器人"}

// DefaultPopulateCount is the size of the generated catalog.
const DefaultPopulateCount = 600

// Generate returns n sample models numbered from 1. fileServer is the
// origin used for cover and preview URLs. The same rnd seed and now give
// the same models, except for their UUIDs.
func Generate(n int, fileServer string, rnd *rand.Rand, now time.Time) Models {
	out := make(Models, 0, n)
	for i := 1; i <= n; i++ {
		typ := Types[rnd.Intn(len(Types))]
		cat := category.Codes[rnd.Intn(len(category.Codes))]

		// 0.5 to 10.5 KB or MB, like the original mock sizes.
		size := rnd.Float64()*10 + 0.5
		unit := 1024.0
		if rnd.Float64() > 0.5 {
			unit *= 1024
		}

		id := uuid.NewV4().String()
		name := fmt.Sprintf("机器人模型%d号-%s", i, typ)
		desc := fmt.Sprintf("这是一个%s的3D模型，包含完整的材质和贴图信息。", typ)
		pkg := fmt.Sprintf("robot-model-%d.zip", i)
		cover := fmt.Sprintf("%s/sanweifile/covers/model-%d.jpg", fileServer, i)
		preview := fmt.Sprintf("%s/sanweifile/models/model-%d.glb", fileServer, i)
		views := rnd.Intn(5000)

		out = append(out, Model{
			CreatedAt:       now.Add(-time.Duration(rnd.Int63n(int64(10000000000 * time.Millisecond)))),
			UUID:            &id,
			Name:            &name,
			Description:     &desc,
			Category:        &cat,
			Type:            &typ,
			PackageName:     &pkg,
			PackageSize:     int64(size * unit),
			CoverImage:      &cover,
			PreviewModelURL: &preview,
			DownloadCount:   rnd.Intn(10000),
			ViewCount:       views,
			LikeCount:       views,
			Rating:          float64(int((rnd.Float64()*2+3)*10)) / 10,
		})
	}
	return out
}
