package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/forcetower/pkg/errors"
	"github.com/matzehuels/forcetower/pkg/force"
	"github.com/matzehuels/forcetower/pkg/graph"
	"github.com/matzehuels/forcetower/pkg/vector"
)

func TestForceSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ForceSpec
		dims    int
		wantErr bool
	}{
		{"Center", ForceSpec{Kind: KindCenter}, 2, false},
		{"ManyBody", ForceSpec{Kind: KindManyBody, Strength: Float(-50), Theta: 0.5}, 2, false},
		{"Link", ForceSpec{Kind: KindLink, Distance: 40, Iterations: 2}, 2, false},
		{"Collide", ForceSpec{Kind: KindCollide, Radius: 3}, 2, false},
		{"Radial", ForceSpec{Kind: KindRadial, Radius: 100}, 3, false},
		{"Z3D", ForceSpec{Kind: KindZ}, 3, false},
		{"Z2D", ForceSpec{Kind: KindZ}, 2, true},
		{"Empty", ForceSpec{}, 2, true},
		{"Unknown", ForceSpec{Kind: "spring"}, 2, true},
		{"NaNStrength", ForceSpec{Kind: KindCenter, Strength: Float(math.NaN())}, 2, true},
		{"InfTarget", ForceSpec{Kind: KindX, Target: math.Inf(1)}, 2, true},
		{"NegativeTheta", ForceSpec{Kind: KindManyBody, Theta: -1}, 2, true},
		{"NegativeIterations", ForceSpec{Kind: KindLink, Iterations: -1}, 2, true},
		{"InfiniteDistanceMax", ForceSpec{Kind: KindManyBody, DistanceMax: math.Inf(1)}, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tt.dims)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidForce) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidForce)
			}
		})
	}
}

func TestForceSpecString(t *testing.T) {
	if got := (ForceSpec{Kind: KindLink}).String(); got != "link" {
		t.Errorf("String() = %q, want link", got)
	}
	if got := (ForceSpec{Kind: KindManyBody, Strength: Float(-30)}).String(); got != "many_body(-30)" {
		t.Errorf("String() = %q, want many_body(-30)", got)
	}
}

func TestBuildForceTypes(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Mass: 2, Radius: 3}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.Edge{
			{From: "a", To: "b", Length: Float(50)},
			{From: "b", To: "c", Length: Float(0), Strength: Float(0)},
		},
	}
	idx, err := g.Index(2)
	if err != nil {
		t.Fatal(err)
	}

	mb := buildForce[vector.Vec2](ForceSpec{Kind: KindManyBody, Strength: Float(-5), Theta: 0.4}, g, idx).(*force.ManyBody[vector.Vec2])
	if mb.Strength != -5 || mb.Theta != 0.4 || mb.DistanceMin != force.DefaultDistanceMin {
		t.Errorf("many-body = %+v", mb)
	}
	if mb.Mass(0) != 2 || mb.Mass(1) != graph.DefaultMass {
		t.Errorf("masses = %v, %v, want 2, %v", mb.Mass(0), mb.Mass(1), graph.DefaultMass)
	}

	cl := buildForce[vector.Vec2](ForceSpec{Kind: KindCollide}, g, idx).(*force.Collide[vector.Vec2])
	if cl.Radius(0) != 3 || cl.Radius(1) != graph.DefaultRadius {
		t.Errorf("radii = %v, %v, want 3, %v", cl.Radius(0), cl.Radius(1), graph.DefaultRadius)
	}
	cl = buildForce[vector.Vec2](ForceSpec{Kind: KindCollide, Radius: 9}, g, idx).(*force.Collide[vector.Vec2])
	if cl.Radius(0) != 9 {
		t.Errorf("uniform radius = %v, want 9", cl.Radius(0))
	}

	link := buildForce[vector.Vec2](ForceSpec{Kind: KindLink, Distance: 20}, g, idx).(*force.Link[vector.Vec2])
	edges := idx.Edges(g)
	if got := link.Length(edges[0], nil); got != 50 {
		t.Errorf("edge length = %v, want 50 from the edge", got)
	}
	if got := link.Length(edges[1], nil); got != 0 {
		t.Errorf("edge length = %v, want an explicit 0 from the edge", got)
	}
	if got := link.Stiffness(edges[1], nil); got != 0 {
		t.Errorf("edge stiffness = %v, want an explicit 0 from the edge", got)
	}

	pos := buildForce[vector.Vec2](ForceSpec{Kind: KindY, Target: 7}, g, idx).(*force.Position[vector.Vec2])
	if pos.Axis != force.AxisY || pos.Target(0) != 7 {
		t.Errorf("position = axis %d target %v", pos.Axis, pos.Target(0))
	}

	c := buildForce[vector.Vec2](ForceSpec{Kind: KindCenter, X: 1, Y: 2, Z: 3}, g, idx).(*force.Center[vector.Vec2])
	if c.Target != (vector.Vec2{X: 1, Y: 2}) {
		t.Errorf("center target = %v, want (1, 2)", c.Target)
	}
}

func TestPointIgnoresExtraAxes(t *testing.T) {
	if p := point[vector.Vec2](1, 2, 3); p != (vector.Vec2{X: 1, Y: 2}) {
		t.Errorf("point 2D = %v", p)
	}
	if p := point[vector.Vec3](1, 2); p != (vector.Vec3{X: 1, Y: 2}) {
		t.Errorf("point 3D = %v", p)
	}
}
