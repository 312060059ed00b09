package layout_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/host"
	"github.com/matzehuels/tilegrid/pkg/layout"
)

func ExampleManager() {
	v := host.NewViewport(200, 150, 12)
	m := layout.New(v, host.NewPool(v), layout.WithAspect(0.5))

	ctx := context.Background()
	_ = m.ComputeLayout(ctx)
	for _, c := range m.Children() {
		fmt.Println(c.Index, c.Rect)
	}

	dt, _ := m.ApplyScroll(ctx, 60)
	fmt.Println("scrolled", dt)
	// Output:
	// 0 {0 0 100 100}
	// 1 {100 0 200 50}
	// 2 {100 50 200 100}
	// 3 {0 100 100 150}
	// 4 {0 150 100 200}
	// 5 {100 100 200 200}
	// scrolled 60
}
