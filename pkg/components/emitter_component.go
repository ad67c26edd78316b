package components

import "github.com/go-gl/mathgl/mgl64"

// MaxTailParticles 每颗外星人子弹拖尾的粒子槽数量
const MaxTailParticles = 50

// TailParticle 拖尾粒子槽
// Lifespan <= 0 表示空槽
type TailParticle struct {
	Position mgl64.Vec3
	Lifespan float64 // 剩余寿命（秒）
	Alpha    float64
}

// TailComponent 外星人子弹的拖尾发射器
//
// 粒子存放在固定容量的环形缓冲区中，由 Cursor 指向下一个写入槽。
// 溢出时直接覆盖最旧的槽位，不维护空闲链表。
type TailComponent struct {
	Particles [MaxTailParticles]TailParticle
	Cursor    int // 下一次写入的槽位
	Active    int // 当前存活粒子数

	// 发射计时：累加 delta，超过间隔就发射一颗并保留余量
	SpawnAccumulator float64
	SpawnInterval    float64 // 1 / 发射速率
	Lifespan         float64 // 单颗粒子寿命（秒）
	FadeFraction     float64 // 在寿命最后这一比例内线性淡出
}

// Accumulate 累加时间并在每个完整间隔处发射一颗粒子
// 返回本次发射的粒子数量
func (t *TailComponent) Accumulate(delta float64, at mgl64.Vec3) int {
	if t.SpawnInterval <= 0 {
		return 0
	}
	t.SpawnAccumulator += delta
	emitted := 0
	for t.SpawnAccumulator > t.SpawnInterval {
		t.SpawnAccumulator -= t.SpawnInterval
		t.Emit(at)
		emitted++
	}
	return emitted
}

// Emit 在游标处写入一颗新粒子，覆盖槽内旧数据
func (t *TailComponent) Emit(at mgl64.Vec3) {
	t.Particles[t.Cursor] = TailParticle{
		Position: at,
		Lifespan: t.Lifespan,
		Alpha:    1,
	}
	if t.Active < MaxTailParticles {
		t.Active++
	}
	t.Cursor = (t.Cursor + 1) % MaxTailParticles
}

// Decay 推进所有粒子的寿命并更新透明度
// 返回仍存活的粒子数
func (t *TailComponent) Decay(delta float64) int {
	if t.Active == 0 {
		return 0
	}

	fadeWindow := t.Lifespan * t.FadeFraction
	alive := 0
	for i := range t.Particles {
		p := &t.Particles[i]
		if p.Lifespan <= 0 {
			continue
		}
		p.Lifespan -= delta
		if p.Lifespan <= 0 {
			p.Alpha = 0
			continue
		}
		if fadeWindow > 0 {
			p.Alpha = min(1.0, p.Lifespan/fadeWindow)
		} else {
			p.Alpha = 1
		}
		alive++
	}
	t.Active = alive
	return alive
}
