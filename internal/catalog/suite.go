package catalog

import "gitlab.com/markorv.net/isaharness/internal/domain"

// riscvTests is the rv64 physical-memory ISA suite the core is expected to pass.
// rv64ui-p-ma_data is left out: misaligned data accesses are not supported yet.
var riscvTests = []domain.TestCase{
	// I
	{ID: "rv64ui-p-add", Group: domain.ExtensionI},
	{ID: "rv64ui-p-addi", Group: domain.ExtensionI},
	{ID: "rv64ui-p-addiw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-addw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-and", Group: domain.ExtensionI},
	{ID: "rv64ui-p-andi", Group: domain.ExtensionI},
	{ID: "rv64ui-p-auipc", Group: domain.ExtensionI},
	{ID: "rv64ui-p-beq", Group: domain.ExtensionI},
	{ID: "rv64ui-p-bge", Group: domain.ExtensionI},
	{ID: "rv64ui-p-bgeu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-blt", Group: domain.ExtensionI},
	{ID: "rv64ui-p-bltu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-bne", Group: domain.ExtensionI},
	{ID: "rv64ui-p-jal", Group: domain.ExtensionI},
	{ID: "rv64ui-p-jalr", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lb", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lbu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-ld", Group: domain.ExtensionI},
	{ID: "rv64ui-p-ld_st", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lh", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lhu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lui", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-lwu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-or", Group: domain.ExtensionI},
	{ID: "rv64ui-p-ori", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sb", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sd", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sh", Group: domain.ExtensionI},
	{ID: "rv64ui-p-simple", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sll", Group: domain.ExtensionI},
	{ID: "rv64ui-p-slli", Group: domain.ExtensionI},
	{ID: "rv64ui-p-slliw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sllw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-slt", Group: domain.ExtensionI},
	{ID: "rv64ui-p-slti", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sltiu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sltu", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sra", Group: domain.ExtensionI},
	{ID: "rv64ui-p-srai", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sraiw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sraw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-srl", Group: domain.ExtensionI},
	{ID: "rv64ui-p-srli", Group: domain.ExtensionI},
	{ID: "rv64ui-p-srliw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-srlw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-st_ld", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sub", Group: domain.ExtensionI},
	{ID: "rv64ui-p-subw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-sw", Group: domain.ExtensionI},
	{ID: "rv64ui-p-xor", Group: domain.ExtensionI},
	{ID: "rv64ui-p-xori", Group: domain.ExtensionI},
	// Zifencei
	{ID: "rv64ui-p-fence_i", Group: domain.ExtensionZifencei},
	// A
	{ID: "rv64ua-p-amoadd_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoadd_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoand_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoand_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amomax_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amomax_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amomaxu_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amomaxu_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amomin_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amomin_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amominu_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amominu_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoor_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoor_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoswap_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoswap_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoxor_d", Group: domain.ExtensionA},
	{ID: "rv64ua-p-amoxor_w", Group: domain.ExtensionA},
	{ID: "rv64ua-p-lrsc", Group: domain.ExtensionA},
	// M
	{ID: "rv64um-p-mul", Group: domain.ExtensionM},
	{ID: "rv64um-p-mulh", Group: domain.ExtensionM},
	{ID: "rv64um-p-mulhsu", Group: domain.ExtensionM},
	{ID: "rv64um-p-mulhu", Group: domain.ExtensionM},
	{ID: "rv64um-p-mulw", Group: domain.ExtensionM},
	{ID: "rv64um-p-div", Group: domain.ExtensionM},
	{ID: "rv64um-p-divu", Group: domain.ExtensionM},
	{ID: "rv64um-p-divuw", Group: domain.ExtensionM},
	{ID: "rv64um-p-divw", Group: domain.ExtensionM},
	{ID: "rv64um-p-rem", Group: domain.ExtensionM},
	{ID: "rv64um-p-remu", Group: domain.ExtensionM},
	{ID: "rv64um-p-remuw", Group: domain.ExtensionM},
	{ID: "rv64um-p-remw", Group: domain.ExtensionM},
}
