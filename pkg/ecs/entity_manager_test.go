package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testTrackComponent struct {
	Name  string
	Items int
}

type testHoverComponent struct {
	Alpha float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	// ID从1开始,0保留为无效ID
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
	if all := em.GetEntitiesWith(); len(all) != 2 {
		t.Errorf("Expected 2 entities, got %d", len(all))
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	pos := comp.(*testPositionComponent)
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(EntityID(42), &testPositionComponent{})

	if _, ok := em.GetComponent(EntityID(42), reflect.TypeOf(&testPositionComponent{})); ok {
		t.Error("Components must not be attached to entities that were never created")
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testTrackComponent{Name: "projects", Items: 6})

	track, ok := GetComponent[*testTrackComponent](em, id)
	if !ok {
		t.Fatal("GetComponent[*testTrackComponent] should find the component")
	}
	if track.Name != "projects" || track.Items != 6 {
		t.Errorf("Unexpected component %+v", track)
	}

	if _, ok := GetComponent[*testHoverComponent](em, id); ok {
		t.Error("GetComponent should report missing components")
	}

	// 同一类型再次添加会替换旧组件
	em.AddComponent(id, &testTrackComponent{Name: "partners"})
	if track, _ := GetComponent[*testTrackComponent](em, id); track.Name != "partners" {
		t.Errorf("AddComponent should replace the component, got %+v", track)
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	track := &testTrackComponent{Name: "partners"}
	em.AddComponent(id, track)
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if _, ok := GetComponent[*testTrackComponent](em, id); !ok {
		t.Error("Entity should still exist before cleanup")
	}

	removed := em.RemoveMarkedEntities()
	if _, ok := GetComponent[*testTrackComponent](em, id); ok {
		t.Error("Entity should be removed after cleanup")
	}
	if len(removed) != 2 {
		t.Fatalf("Expected 2 removed components, got %d", len(removed))
	}
	foundTrack := false
	for _, comp := range removed {
		if comp == track {
			foundTrack = true
		}
	}
	if !foundTrack {
		t.Error("Removed components should include the track component")
	}
	if all := em.GetEntitiesWith(); len(all) != 0 {
		t.Errorf("Expected 0 entities after cleanup, got %d", len(all))
	}

	// 第二次清理没有待删除实体
	if again := em.RemoveMarkedEntities(); len(again) != 0 {
		t.Errorf("Second cleanup should remove nothing, got %d", len(again))
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testTrackComponent{})
	em.AddComponent(id1, &testHoverComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testTrackComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	both := GetEntitiesWith2[*testTrackComponent, *testPositionComponent](em)
	if len(both) != 2 || both[0] != id1 || both[1] != id3 {
		t.Errorf("Expected [%d %d] sorted by ID, got %v", id1, id3, both)
	}

	all := em.GetEntitiesWith(reflect.TypeOf(&testTrackComponent{}), reflect.TypeOf(&testPositionComponent{}), reflect.TypeOf(&testHoverComponent{}))
	if len(all) != 1 || all[0] != id1 {
		t.Errorf("Expected only %d, got %v", id1, all)
	}

	pos := GetEntitiesWith1[*testPositionComponent](em)
	if len(pos) != 3 {
		t.Errorf("Expected 3 entities with Position component, got %d", len(pos))
	}
	for i := 1; i < len(pos); i++ {
		if pos[i-1] >= pos[i] {
			t.Fatalf("Query result should be sorted, got %v", pos)
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		em.AddComponent(id, &testPositionComponent{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	left := GetEntitiesWith1[*testPositionComponent](em)
	if len(left) != 1 || left[0] != id2 {
		t.Errorf("Only id2 should remain, got %v", left)
	}
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 200; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			em.AddComponent(id, &testTrackComponent{Items: i})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testTrackComponent, *testPositionComponent](em)
	}
}
