package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testBulletComponent struct {
	Speed    float64
	Disposed bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 10, Y: 20, Z: 0})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 10 || retrieved.Y != 20 {
		t.Errorf("Component data mismatch, expected (10, 20), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 泛型版本应读取到同一个实例
	typed, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if typed != retrieved {
		t.Error("Generic and reflection lookups should return the same pointer")
	}
}

func TestGenericAddAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testBulletComponent{Speed: 75})
	if !HasComponent[*testBulletComponent](em, id) {
		t.Fatal("Should have bullet component after generic add")
	}
	if !em.HasComponent(id, reflect.TypeOf(&testBulletComponent{})) {
		t.Fatal("Reflection lookup should see generically added component")
	}

	RemoveComponent[*testBulletComponent](em, id)
	if HasComponent[*testBulletComponent](em, id) {
		t.Error("Component should be gone after RemoveComponent")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前组件仍可读取（例如读取死亡位置）
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity components should still be readable before cleanup")
	}

	// 但查询结果中已不包含该实体
	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 0 {
		t.Errorf("Marked entity should be excluded from queries, got %v", got)
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyEntityTwiceIsSafe(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if em.PendingDestroyCount() != 1 {
		t.Errorf("Double destroy should mark once, got %d pending", em.PendingDestroyCount())
	}
	if pending := em.PendingDestroy(); len(pending) != 1 || pending[0] != id {
		t.Errorf("PendingDestroy should list the marked entity once, got %v", pending)
	}

	em.RemoveMarkedEntities()
	em.DestroyEntity(id) // 已删除的实体再次标记应被忽略
	if em.PendingDestroyCount() != 0 {
		t.Errorf("Destroying a removed entity should be a no-op, got %d pending", em.PendingDestroyCount())
	}
}

func TestGetEntitiesWithPreservesCreationOrder(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testBulletComponent{Speed: float64(i)})
		ids = append(ids, id)
	}

	// 删除中间若干实体后顺序仍然稳定
	em.DestroyEntity(ids[3])
	em.DestroyEntity(ids[11])
	em.RemoveMarkedEntities()

	got := GetEntitiesWith1[*testBulletComponent](em)
	if len(got) != 18 {
		t.Fatalf("Expected 18 bullets, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("Query result not in creation order: %v", got)
		}
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testBulletComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testBulletComponent{})

	entities := GetEntitiesWith2[*testPositionComponent, *testBulletComponent](em)
	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}
	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	em.AddComponent(first, &testPositionComponent{})
	em.DestroyEntity(first)

	em.Clear()

	if em.EntityCount() != 0 {
		t.Errorf("Expected no entities after Clear, got %d", em.EntityCount())
	}
	if em.PendingDestroyCount() != 0 {
		t.Error("Clear should drop pending destructions")
	}

	// ID 不回退，避免旧引用误命中新实体
	next := em.CreateEntity()
	if next <= first {
		t.Errorf("IDs must keep increasing after Clear, got %d after %d", next, first)
	}
}
